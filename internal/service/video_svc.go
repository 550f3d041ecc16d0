package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Furiouss38/podv2/internal/logging"
	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/repository"
	"github.com/Furiouss38/podv2/internal/storage"
)

type VideoService struct {
	repo     *repository.VideoRepo
	owners   *repository.OwnerRepo
	media    *MediaService
	cache    *CacheService
	typeID   int64
	mainLang string
	now      func() time.Time
	log      zerolog.Logger
}

func NewVideoService(repo *repository.VideoRepo, owners *repository.OwnerRepo, media *MediaService, cache *CacheService, defaultTypeID int64, mainLang string) *VideoService {
	return &VideoService{
		repo:     repo,
		owners:   owners,
		media:    media,
		cache:    cache,
		typeID:   defaultTypeID,
		mainLang: mainLang,
		now:      time.Now,
		log:      logging.Component("videos"),
	}
}

func (s *VideoService) defaults() model.VideoDefaults {
	now := s.now().UTC()
	return model.VideoDefaults{
		TypeID:   s.typeID,
		MainLang: s.mainLang,
		Today:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// Lookup finds a video by slug and builds its API response.
// Uses cache-aside: check Redis first, fall back to DB, then populate cache.
func (s *VideoService) Lookup(ctx context.Context, slug string) (*model.VideoResponse, error) {
	cached, err := s.cache.GetVideo(ctx, slug)
	if err != nil {
		s.cache.warn(err, "get video")
	} else if cached != nil {
		var resp model.VideoResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	v, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := model.NewVideoResponse(*v)
	s.cache.warn(s.cache.SetVideo(ctx, slug, resp), "set video")
	return &resp, nil
}

func (s *VideoService) Get(ctx context.Context, id int64) (*model.VideoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := model.NewVideoResponse(*v)
	return &resp, nil
}

func (s *VideoService) List(ctx context.Context, f model.VideoFilter) ([]model.VideoResponse, error) {
	videos, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]model.VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, model.NewVideoResponse(v))
	}
	return out, nil
}

// Create saves a new video, filling column defaults for omitted fields.
func (s *VideoService) Create(ctx context.Context, req model.VideoRequest) (*model.VideoResponse, error) {
	v := &model.Video{}
	req.Apply(v, s.defaults())
	if err := s.save(ctx, v, ""); err != nil {
		return nil, err
	}
	resp := model.NewVideoResponse(*v)
	return &resp, nil
}

// Update replaces the editable fields of an existing video. The slug is
// recomputed from the new title; file, password and thumbnails are kept
// when the request omits them.
func (s *VideoService) Update(ctx context.Context, id int64, req model.VideoRequest) (*model.VideoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := v.Slug
	req.Apply(v, s.defaults())
	if err := s.save(ctx, v, oldSlug); err != nil {
		return nil, err
	}
	resp := model.NewVideoResponse(*v)
	return &resp, nil
}

// AttachFile uploads the video file to its owner's directory and records
// the resulting path on the video.
func (s *VideoService) AttachFile(ctx context.Context, id int64, u Upload) (*model.VideoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.owners.FindByID(ctx, v.OwnerID)
	if err != nil {
		return nil, err
	}

	key, err := s.media.PutVideo(ctx, owner.Hashkey, u)
	if err != nil {
		return nil, err
	}

	previous := v.File
	v.File = key
	if err := s.save(ctx, v, v.Slug); err != nil {
		return nil, err
	}
	if previous != "" && previous != key {
		s.removeObject(ctx, previous)
	}

	resp := model.NewVideoResponse(*v)
	return &resp, nil
}

// Delete removes a video along with its stored file.
func (s *VideoService) Delete(ctx context.Context, id int64) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.warn(s.cache.InvalidateVideo(ctx, v.Slug), "invalidate video")
	if v.File != "" {
		s.removeObject(ctx, v.File)
	}
	return nil
}

func (s *VideoService) save(ctx context.Context, v *model.Video, oldSlug string) error {
	err := s.repo.Save(ctx, v)
	metrics.RecordSaves.WithLabelValues("video", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	s.cache.warn(s.cache.InvalidateVideo(ctx, oldSlug, v.Slug), "invalidate video")
	return nil
}

func (s *VideoService) removeObject(ctx context.Context, key string) {
	err := s.media.Remove(ctx, key)
	if err != nil && !errors.Is(err, storage.ErrDisabled) {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to remove stored file")
	}
}
