package service

import (
	"context"
	"encoding/json"

	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/repository"
)

type StatsService struct {
	repo  *repository.StatsRepo
	cache *CacheService
}

func NewStatsService(repo *repository.StatsRepo, cache *CacheService) *StatsService {
	return &StatsService{repo: repo, cache: cache}
}

// Catalog returns catalogue counters, cached for StatsCacheTTL.
func (s *StatsService) Catalog(ctx context.Context) (*model.CatalogStats, error) {
	cached, err := s.cache.GetStats(ctx)
	if err != nil {
		s.cache.warn(err, "get stats")
	} else if cached != nil {
		var stats model.CatalogStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.warn(s.cache.SetStats(ctx, stats), "set stats")
	return stats, nil
}
