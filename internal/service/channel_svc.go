package service

import (
	"context"
	"encoding/json"

	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/repository"
)

type ChannelService struct {
	repo   *repository.ChannelRepo
	themes *repository.ThemeRepo
	cache  *CacheService
}

func NewChannelService(repo *repository.ChannelRepo, themes *repository.ThemeRepo, cache *CacheService) *ChannelService {
	return &ChannelService{repo: repo, themes: themes, cache: cache}
}

// List returns channels ordered by title; hidden ones only when all is set.
func (s *ChannelService) List(ctx context.Context, all bool) ([]model.Channel, error) {
	return s.repo.List(ctx, !all)
}

// Get returns a channel by id.
func (s *ChannelService) Get(ctx context.Context, id int64) (*model.Channel, error) {
	return s.repo.FindByID(ctx, id)
}

// Lookup returns the channel with the given slug and its themes.
// Uses cache-aside: check Redis first, fall back to DB, then populate cache.
func (s *ChannelService) Lookup(ctx context.Context, slug string) (*model.ChannelResponse, error) {
	cached, err := s.cache.GetChannel(ctx, slug)
	if err != nil {
		s.cache.warn(err, "get channel")
	} else if cached != nil {
		var resp model.ChannelResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	ch, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	themes, err := s.themes.List(ctx, ch.ID)
	if err != nil {
		return nil, err
	}

	resp := &model.ChannelResponse{Channel: *ch, Themes: themes}
	s.cache.warn(s.cache.SetChannel(ctx, slug, resp), "set channel")
	return resp, nil
}

// Save creates or updates a channel and drops cached copies under both its
// previous and its new slug.
func (s *ChannelService) Save(ctx context.Context, ch *model.Channel) error {
	var oldSlug string
	if ch.ID != 0 {
		old, err := s.repo.FindByID(ctx, ch.ID)
		if err != nil {
			return err
		}
		oldSlug = old.Slug
	}

	err := s.repo.Save(ctx, ch)
	metrics.RecordSaves.WithLabelValues("channel", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}

	s.cache.warn(s.cache.InvalidateChannel(ctx, oldSlug, ch.Slug), "invalidate channel")
	return nil
}

// Delete removes a channel with its themes.
func (s *ChannelService) Delete(ctx context.Context, id int64) error {
	ch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.warn(s.cache.InvalidateChannel(ctx, ch.Slug), "invalidate channel")
	return nil
}
