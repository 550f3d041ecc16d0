package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Furiouss38/podv2/internal/logging"
	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/internal/model"
)

const (
	videosTable = "videos"

	defaultListLimit = 50
	maxListLimit     = 200
)

// Identity sources reported by ResolveIdentity.
const (
	IdentityExisting = "existing"
	IdentitySequence = "sequence"
	IdentityLatest   = "latest"
	IdentityConstant = "constant"
)

type VideoRepo struct {
	db  DB
	log zerolog.Logger
}

func NewVideoRepo(db DB) *VideoRepo {
	return &VideoRepo{db: db, log: logging.Component("video-repo")}
}

const videoSelect = `
	SELECT v.id, v.video, v.allow_downloading, v.is_360, v.title, v.slug, v.owner_id,
	       v.date_added, v.date_evt, v.description, v.cursus, v.main_lang, v.overview,
	       v.duration, v.info_video, v.is_draft, v.is_restricted, v.password, v.tags,
	       v.thumbnails, v.type_id,
	       COALESCE((SELECT array_agg(group_id ORDER BY group_id) FROM video_groups WHERE video_id = v.id), '{}'),
	       COALESCE((SELECT array_agg(discipline_id ORDER BY discipline_id) FROM video_disciplines WHERE video_id = v.id), '{}')
	FROM videos v`

func scanVideo(row pgx.Row) (*model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.ID, &v.File, &v.AllowDownloading, &v.Is360, &v.Title, &v.Slug, &v.OwnerID,
		&v.DateAdded, &v.DateEvt, &v.Description, &v.Cursus, &v.MainLang, &v.Overview,
		&v.Duration, &v.InfoVideo, &v.IsDraft, &v.IsRestricted, &v.Password, &v.Tags,
		&v.Thumbnails, &v.TypeID,
		&v.GroupIDs, &v.DisciplineIDs,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindByID returns a single video.
func (r *VideoRepo) FindByID(ctx context.Context, id int64) (*model.Video, error) {
	return scanVideo(r.db.QueryRow(ctx, videoSelect+` WHERE v.id = $1`, id))
}

// FindBySlug returns a single video.
func (r *VideoRepo) FindBySlug(ctx context.Context, slug string) (*model.Video, error) {
	return scanVideo(r.db.QueryRow(ctx, videoSelect+` WHERE v.slug = $1`, slug))
}

// List returns videos matching f, newest first.
func (r *VideoRepo) List(ctx context.Context, f model.VideoFilter) ([]model.Video, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.OwnerID != 0 {
		add(`v.owner_id = $%d`, f.OwnerID)
	}
	if f.TypeID != 0 {
		add(`v.type_id = $%d`, f.TypeID)
	}
	if f.DisciplineID != 0 {
		add(`EXISTS (SELECT 1 FROM video_disciplines vd WHERE vd.video_id = v.id AND vd.discipline_id = $%d)`, f.DisciplineID)
	}
	if f.Tag != "" {
		add(`v.tags ILIKE '%%' || $%d || '%%'`, f.Tag)
	}

	query := videoSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	args = append(args, limit, max(f.Offset, 0))
	query += fmt.Sprintf(` ORDER BY v.date_added DESC, v.id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []model.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

// ResolveIdentity picks the identity a video's slug is built from.
// A persisted video keeps its own. A new one gets the predicted next
// sequence value, else the latest existing id plus one, else 1. Failures
// along the way are logged, never returned.
func (r *VideoRepo) ResolveIdentity(ctx context.Context, v *model.Video) (int64, string) {
	if v.ID != 0 {
		return v.ID, IdentityExisting
	}

	next, err := NextIdentity(ctx, r.db, videosTable)
	if err == nil {
		return next, IdentitySequence
	}
	r.log.Warn().Err(err).Msg("identity prediction failed, falling back to latest id")

	latest, err := LatestIdentity(ctx, r.db, videosTable)
	if err == nil {
		return latest + 1, IdentityLatest
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Warn().Err(err).Msg("latest id lookup failed, using 1")
	}
	return 1, IdentityConstant
}

// Save inserts or updates the video with its discipline and group sets in
// one transaction. Slug and tags are re-derived on every call, so changing
// the title of a published video changes its slug. Two concurrent creates
// that resolve the same identity collide on the slug and the second fails
// with ErrConflict.
func (r *VideoRepo) Save(ctx context.Context, v *model.Video) error {
	id, source := r.ResolveIdentity(ctx, v)
	metrics.IdentitySource.WithLabelValues(source).Inc()
	v.PrepareSave(id)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := []any{
		v.File, v.AllowDownloading, v.Is360, v.Title, v.Slug, v.OwnerID,
		v.DateAdded, v.DateEvt, v.Description, v.Cursus, v.MainLang, v.Overview,
		v.Duration, v.InfoVideo, v.IsDraft, v.IsRestricted, v.Password, v.Tags,
		v.Thumbnails, v.TypeID,
	}

	newID := v.ID
	if v.ID == 0 {
		err = tx.QueryRow(ctx, `
			INSERT INTO videos (video, allow_downloading, is_360, title, slug, owner_id,
			                    date_added, date_evt, description, cursus, main_lang, overview,
			                    duration, info_video, is_draft, is_restricted, password, tags,
			                    thumbnails, type_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
			RETURNING id`, args...).Scan(&newID)
		err = mapError(err)
	} else {
		err = expectRow(tx.Exec(ctx, `
			UPDATE videos
			SET video = $1, allow_downloading = $2, is_360 = $3, title = $4, slug = $5, owner_id = $6,
			    date_added = $7, date_evt = $8, description = $9, cursus = $10, main_lang = $11,
			    overview = $12, duration = $13, info_video = $14, is_draft = $15, is_restricted = $16,
			    password = $17, tags = $18, thumbnails = $19, type_id = $20
			WHERE id = $21`, append(args, v.ID)...))
	}
	if err != nil {
		return err
	}

	if err := replaceLinks(ctx, tx, "video_disciplines", "video_id", "discipline_id", newID, v.DisciplineIDs); err != nil {
		return mapError(err)
	}
	if err := replaceLinks(ctx, tx, "video_groups", "video_id", "group_id", newID, v.GroupIDs); err != nil {
		return mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	v.ID = newID
	return nil
}

// Delete removes a video with its view counts and links.
func (r *VideoRepo) Delete(ctx context.Context, id int64) error {
	return expectRow(r.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id))
}
