package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// NextIdentity reads, without consuming it, the value the identity sequence
// of table will hand out next. It is a prediction: a concurrent insert may
// take that value first. Returns pgx.ErrNoRows when the table has no
// serial sequence.
func NextIdentity(ctx context.Context, db DB, table string) (int64, error) {
	query := `
		SELECT COALESCE(s.last_value + s.increment_by, s.start_value)
		FROM pg_sequences s
		WHERE format('%I.%I', s.schemaname, s.sequencename) = pg_get_serial_sequence($1, 'id')`

	var next int64
	if err := db.QueryRow(ctx, query, table).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// LatestIdentity returns the highest identity currently in table.
// Returns pgx.ErrNoRows when the table is empty.
func LatestIdentity(ctx context.Context, db DB, table string) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `SELECT id FROM `+pgx.Identifier{table}.Sanitize()+` ORDER BY id DESC LIMIT 1`).Scan(&id)
	return id, err
}
