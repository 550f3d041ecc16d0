package repository

import (
	"context"
	"time"

	"github.com/Furiouss38/podv2/internal/model"
)

type StatsRepo struct {
	db DB
}

func NewStatsRepo(db DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Catalog counts the main records in a single round trip.
func (r *StatsRepo) Catalog(ctx context.Context) (*model.CatalogStats, error) {
	var s model.CatalogStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM channels),
			(SELECT COUNT(*) FROM videos),
			(SELECT COUNT(*) FROM videos WHERE is_draft),
			(SELECT COUNT(*) FROM owners),
			(SELECT COALESCE(SUM(count), 0) FROM view_counts)`,
	).Scan(&s.Channels, &s.Videos, &s.Drafts, &s.Owners, &s.TotalViews)
	if err != nil {
		return nil, err
	}
	s.LastUpdated = time.Now().UTC()
	return &s, nil
}
