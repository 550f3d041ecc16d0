package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Furiouss38/podv2/internal/model"
)

type ChannelRepo struct {
	db DB
}

func NewChannelRepo(db DB) *ChannelRepo {
	return &ChannelRepo{db: db}
}

const channelSelect = `
	SELECT c.id, c.title, c.slug, c.description, c.headband, c.color, c.style, c.visible,
	       COALESCE((SELECT array_agg(owner_id ORDER BY owner_id) FROM channel_owners WHERE channel_id = c.id), '{}'),
	       COALESCE((SELECT array_agg(owner_id ORDER BY owner_id) FROM channel_users WHERE channel_id = c.id), '{}')
	FROM channels c`

func scanChannel(row pgx.Row) (*model.Channel, error) {
	var ch model.Channel
	err := row.Scan(
		&ch.ID, &ch.Title, &ch.Slug, &ch.Description, &ch.Headband, &ch.Color, &ch.Style, &ch.Visible,
		&ch.OwnerIDs, &ch.UserIDs,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// FindBySlug returns a single channel with its owner and user ids.
func (r *ChannelRepo) FindBySlug(ctx context.Context, slug string) (*model.Channel, error) {
	return scanChannel(r.db.QueryRow(ctx, channelSelect+` WHERE c.slug = $1`, slug))
}

// FindByID returns a single channel with its owner and user ids.
func (r *ChannelRepo) FindByID(ctx context.Context, id int64) (*model.Channel, error) {
	return scanChannel(r.db.QueryRow(ctx, channelSelect+` WHERE c.id = $1`, id))
}

// List returns channels ordered by title. With visibleOnly, channels not
// flagged visible are left out.
func (r *ChannelRepo) List(ctx context.Context, visibleOnly bool) ([]model.Channel, error) {
	query := channelSelect
	if visibleOnly {
		query += ` WHERE c.visible`
	}
	query += ` ORDER BY c.title`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := []model.Channel{}
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, *ch)
	}
	return channels, rows.Err()
}

// Save inserts or updates the channel and its owner/user sets in one
// transaction. The slug is always recomputed from the title.
func (r *ChannelRepo) Save(ctx context.Context, ch *model.Channel) error {
	ch.PrepareSave()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	newID := ch.ID
	if ch.ID == 0 {
		err = tx.QueryRow(ctx, `
			INSERT INTO channels (title, slug, description, headband, color, style, visible)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			ch.Title, ch.Slug, ch.Description, ch.Headband, ch.Color, ch.Style, ch.Visible,
		).Scan(&newID)
		err = mapError(err)
	} else {
		err = expectRow(tx.Exec(ctx, `
			UPDATE channels
			SET title = $1, slug = $2, description = $3, headband = $4, color = $5, style = $6, visible = $7
			WHERE id = $8`,
			ch.Title, ch.Slug, ch.Description, ch.Headband, ch.Color, ch.Style, ch.Visible, ch.ID))
	}
	if err != nil {
		return err
	}

	if err := replaceLinks(ctx, tx, "channel_owners", "channel_id", "owner_id", newID, ch.OwnerIDs); err != nil {
		return mapError(err)
	}
	if err := replaceLinks(ctx, tx, "channel_users", "channel_id", "owner_id", newID, ch.UserIDs); err != nil {
		return mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	ch.ID = newID
	return nil
}

// Delete removes a channel. Its themes and member links go with it.
func (r *ChannelRepo) Delete(ctx context.Context, id int64) error {
	return expectRow(r.db.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id))
}
