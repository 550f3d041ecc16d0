package service

import (
	"context"

	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/repository"
)

type ThemeService struct {
	repo     *repository.ThemeRepo
	channels *repository.ChannelRepo
	cache    *CacheService
}

func NewThemeService(repo *repository.ThemeRepo, channels *repository.ChannelRepo, cache *CacheService) *ThemeService {
	return &ThemeService{repo: repo, channels: channels, cache: cache}
}

// List returns themes by title, for one channel when channelID is set.
func (s *ThemeService) List(ctx context.Context, channelID int64) ([]model.Theme, error) {
	return s.repo.List(ctx, channelID)
}

// Get returns a theme by id.
func (s *ThemeService) Get(ctx context.Context, id int64) (*model.Theme, error) {
	return s.repo.FindByID(ctx, id)
}

// Save creates or updates a theme. Cached pages of the channels it
// belonged to and belongs to are dropped.
func (s *ThemeService) Save(ctx context.Context, t *model.Theme) error {
	channelIDs := []int64{t.ChannelID}
	if t.ID != 0 {
		old, err := s.repo.FindByID(ctx, t.ID)
		if err != nil {
			return err
		}
		if old.ChannelID != t.ChannelID {
			channelIDs = append(channelIDs, old.ChannelID)
		}
	}

	err := s.repo.Save(ctx, t)
	metrics.RecordSaves.WithLabelValues("theme", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}

	s.invalidateChannels(ctx, channelIDs...)
	return nil
}

// Delete removes a theme and its subthemes.
func (s *ThemeService) Delete(ctx context.Context, id int64) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateChannels(ctx, t.ChannelID)
	return nil
}

func (s *ThemeService) invalidateChannels(ctx context.Context, ids ...int64) {
	if s.cache.Client() == nil {
		return
	}
	for _, id := range ids {
		ch, err := s.channels.FindByID(ctx, id)
		if err != nil {
			s.cache.warn(err, "resolve channel slug")
			continue
		}
		s.cache.warn(s.cache.InvalidateChannel(ctx, ch.Slug), "invalidate channel")
	}
}
