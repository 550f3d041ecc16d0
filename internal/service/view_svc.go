package service

import (
	"context"

	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/repository"
)

type ViewService struct {
	repo   *repository.ViewCountRepo
	videos *repository.VideoRepo
	worker *ViewWorker
}

func NewViewService(repo *repository.ViewCountRepo, videos *repository.VideoRepo, worker *ViewWorker) *ViewService {
	return &ViewService{repo: repo, videos: videos, worker: worker}
}

// Hit queues a view of an existing video.
func (s *ViewService) Hit(ctx context.Context, videoID int64) error {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return err
	}
	s.worker.Add(videoID)
	return nil
}

// Counts lists the per-day counters of a video.
func (s *ViewService) Counts(ctx context.Context, videoID int64) ([]model.ViewCount, error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}
	return s.repo.ListByVideo(ctx, videoID)
}
