package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var (
	// ErrConflict is returned when a write violates a unique constraint,
	// e.g. a duplicate title or slug.
	ErrConflict = errors.New("unique constraint violated")
	// ErrInvalidReference is returned when a write points at a row that
	// does not exist (unknown owner, type, channel...).
	ErrInvalidReference = errors.New("referenced row does not exist")
	// ErrValueTooLong is returned when a value does not fit its column.
	ErrValueTooLong = errors.New("value too long for column")
)

// SQLSTATE codes mapped to the errors above.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeStringTruncation    = "22001"
)

// mapError translates storage constraint failures into repository errors.
// The constraint name is kept in the message; other errors pass through.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
	case codeStringTruncation:
		return fmt.Errorf("%w: %s", ErrValueTooLong, pgErr.Message)
	}
	return err
}

// expectRow turns a zero-row UPDATE/DELETE into pgx.ErrNoRows so callers
// can treat a missing id the same way as a missing SELECT result.
func expectRow(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// replaceLinks rewrites the rows of a join table for one parent inside tx.
func replaceLinks(ctx context.Context, tx pgx.Tx, table, parentCol, childCol string, parentID int64, childIDs []int64) error {
	_, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, parentCol), parentID)
	if err != nil {
		return err
	}
	if len(childIDs) == 0 {
		return nil
	}
	_, err = tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1::bigint, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, table, parentCol, childCol), parentID, childIDs)
	return err
}

// collectIDs scans a single-column id result set.
func collectIDs(rows pgx.Rows, err error) ([]int64, error) {
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
