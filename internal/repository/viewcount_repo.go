package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Furiouss38/podv2/internal/model"
)

type ViewCountRepo struct {
	db  DB
	now func() time.Time
}

func NewViewCountRepo(db DB) *ViewCountRepo {
	return &ViewCountRepo{db: db, now: time.Now}
}

// today returns the current date at midnight UTC.
func (r *ViewCountRepo) today() time.Time {
	y, m, d := r.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Save inserts or updates a row. Its date is reset to today on every save,
// so re-saving yesterday's row moves it to today instead of keeping history.
func (r *ViewCountRepo) Save(ctx context.Context, vc *model.ViewCount) error {
	vc.Date = r.today()

	if vc.ID == 0 {
		err := r.db.QueryRow(ctx, `
			INSERT INTO view_counts (video_id, date, count) VALUES ($1, $2, $3)
			RETURNING id`, vc.VideoID, vc.Date, vc.Count).Scan(&vc.ID)
		return mapError(err)
	}

	return expectRow(r.db.Exec(ctx, `
		UPDATE view_counts SET video_id = $1, date = $2, count = $3
		WHERE id = $4`, vc.VideoID, vc.Date, vc.Count, vc.ID))
}

// Record adds n views to the video's row for today, creating it if needed,
// and returns the updated row.
func (r *ViewCountRepo) Record(ctx context.Context, videoID int64, n int) (*model.ViewCount, error) {
	vc := model.ViewCount{VideoID: videoID, Date: r.today()}
	err := r.db.QueryRow(ctx, `
		INSERT INTO view_counts (video_id, date, count) VALUES ($1, $2, $3)
		ON CONFLICT (video_id, date) DO UPDATE
		SET count = view_counts.count + EXCLUDED.count
		RETURNING id, count`, videoID, vc.Date, n).Scan(&vc.ID, &vc.Count)
	if err != nil {
		return nil, mapError(err)
	}
	return &vc, nil
}

// ListByVideo returns the per-day counts of a video, most recent first.
func (r *ViewCountRepo) ListByVideo(ctx context.Context, videoID int64) ([]model.ViewCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, video_id, date, count FROM view_counts
		WHERE video_id = $1
		ORDER BY date DESC`, videoID)
	if err != nil {
		return nil, err
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.ViewCount])
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []model.ViewCount{}
	}
	return counts, nil
}
