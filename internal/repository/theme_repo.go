package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Furiouss38/podv2/internal/model"
)

type ThemeRepo struct {
	db DB
}

func NewThemeRepo(db DB) *ThemeRepo {
	return &ThemeRepo{db: db}
}

const themeSelect = `
	SELECT t.id, t.parent_id, t.title, t.slug, t.description, t.headband, t.channel_id, c.title
	FROM themes t
	JOIN channels c ON c.id = t.channel_id`

func scanTheme(row pgx.Row) (*model.Theme, error) {
	var t model.Theme
	err := row.Scan(&t.ID, &t.ParentID, &t.Title, &t.Slug, &t.Description, &t.Headband, &t.ChannelID, &t.ChannelTitle)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByID returns a single theme.
func (r *ThemeRepo) FindByID(ctx context.Context, id int64) (*model.Theme, error) {
	return scanTheme(r.db.QueryRow(ctx, themeSelect+` WHERE t.id = $1`, id))
}

// List returns themes ordered by title, restricted to one channel when
// channelID is non-zero.
func (r *ThemeRepo) List(ctx context.Context, channelID int64) ([]model.Theme, error) {
	query := themeSelect + ` WHERE ($1::bigint = 0 OR t.channel_id = $1) ORDER BY t.title`

	rows, err := r.db.Query(ctx, query, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	themes := []model.Theme{}
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, err
		}
		themes = append(themes, *t)
	}
	return themes, rows.Err()
}

// Save inserts or updates the theme. The slug is always recomputed from
// the title.
func (r *ThemeRepo) Save(ctx context.Context, t *model.Theme) error {
	t.PrepareSave()

	if t.ID == 0 {
		err := r.db.QueryRow(ctx, `
			INSERT INTO themes (parent_id, title, slug, description, headband, channel_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			t.ParentID, t.Title, t.Slug, t.Description, t.Headband, t.ChannelID,
		).Scan(&t.ID)
		return mapError(err)
	}

	return expectRow(r.db.Exec(ctx, `
		UPDATE themes
		SET parent_id = $1, title = $2, slug = $3, description = $4, headband = $5, channel_id = $6
		WHERE id = $7`,
		t.ParentID, t.Title, t.Slug, t.Description, t.Headband, t.ChannelID, t.ID))
}

// Delete removes a theme and its subthemes.
func (r *ThemeRepo) Delete(ctx context.Context, id int64) error {
	return expectRow(r.db.Exec(ctx, `DELETE FROM themes WHERE id = $1`, id))
}
