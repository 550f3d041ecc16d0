package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schema string

// Execer is the part of a pool Migrate needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrate creates any missing tables and seeds the default video type.
// Safe to run on every start.
func Migrate(ctx context.Context, db Execer, defaultTypeID int64) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	// The seeded row takes an explicit id, so the sequence is moved past it
	// to keep later inserts (and identity predictions) from colliding.
	_, err := db.Exec(ctx, `
		INSERT INTO types (id, title, slug) VALUES ($1, 'Other', 'other')
		ON CONFLICT DO NOTHING`, defaultTypeID)
	if err != nil {
		return fmt.Errorf("seed default type: %w", err)
	}
	_, err = db.Exec(ctx, `
		SELECT setval(pg_get_serial_sequence('types', 'id'), GREATEST(MAX(id), 1))
		FROM types`)
	if err != nil {
		return fmt.Errorf("sync types sequence: %w", err)
	}
	return nil
}
