package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Furiouss38/podv2/internal/model"
)

// TaxonRepo stores one flat classification table (types or disciplines).
type TaxonRepo struct {
	db    DB
	table string
}

func NewTypeRepo(db DB) *TaxonRepo {
	return &TaxonRepo{db: db, table: "types"}
}

func NewDisciplineRepo(db DB) *TaxonRepo {
	return &TaxonRepo{db: db, table: "disciplines"}
}

// Table returns the name of the backing table.
func (r *TaxonRepo) Table() string {
	return r.table
}

func (r *TaxonRepo) selectSQL() string {
	return fmt.Sprintf(`SELECT id, title, slug, description, icon FROM %s`, r.table)
}

func scanTaxon(row pgx.Row) (*model.Taxon, error) {
	var t model.Taxon
	if err := row.Scan(&t.ID, &t.Title, &t.Slug, &t.Description, &t.Icon); err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByID returns a single row.
func (r *TaxonRepo) FindByID(ctx context.Context, id int64) (*model.Taxon, error) {
	return scanTaxon(r.db.QueryRow(ctx, r.selectSQL()+` WHERE id = $1`, id))
}

// FindBySlug returns a single row.
func (r *TaxonRepo) FindBySlug(ctx context.Context, slug string) (*model.Taxon, error) {
	return scanTaxon(r.db.QueryRow(ctx, r.selectSQL()+` WHERE slug = $1`, slug))
}

// List returns all rows ordered by title.
func (r *TaxonRepo) List(ctx context.Context) ([]model.Taxon, error) {
	rows, err := r.db.Query(ctx, r.selectSQL()+` ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Taxon{}
	for rows.Next() {
		t, err := scanTaxon(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// Save inserts or updates the row. The slug is always recomputed from the
// title.
func (r *TaxonRepo) Save(ctx context.Context, t *model.Taxon) error {
	t.PrepareSave()

	if t.ID == 0 {
		err := r.db.QueryRow(ctx, fmt.Sprintf(`
			INSERT INTO %s (title, slug, description, icon)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, r.table),
			t.Title, t.Slug, t.Description, t.Icon,
		).Scan(&t.ID)
		return mapError(err)
	}

	return expectRow(r.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET title = $1, slug = $2, description = $3, icon = $4
		WHERE id = $5`, r.table),
		t.Title, t.Slug, t.Description, t.Icon, t.ID))
}

// Delete removes a row. Deleting a type still used by videos fails with
// ErrInvalidReference.
func (r *TaxonRepo) Delete(ctx context.Context, id int64) error {
	return expectRow(r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id))
}
