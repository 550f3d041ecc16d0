package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/internal/storage"
	"github.com/Furiouss38/podv2/pkg/mediapath"
)

// MediaService stores uploaded files under their computed media paths.
type MediaService struct {
	store     storage.ObjectStore
	videosDir string
	filesDir  string
	suffix    func() string
}

// maxKeyAttempts bounds the suffixed names tried for a taken key.
const maxKeyAttempts = 5

func NewMediaService(store storage.ObjectStore, videosDir, filesDir string) *MediaService {
	return &MediaService{
		store:     store,
		videosDir: videosDir,
		filesDir:  filesDir,
		suffix:    func() string { return uuid.NewString()[:7] },
	}
}

// Upload is an incoming file with its client-side name.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PutVideo stores a video file in its owner's directory and returns the key.
func (s *MediaService) PutVideo(ctx context.Context, ownerHash string, u Upload) (string, error) {
	return s.put(ctx, "video", mediapath.Video(s.videosDir, ownerHash, u.Filename), u)
}

// PutFile stores an auxiliary file (headband, icon, thumbnail) and returns the key.
func (s *MediaService) PutFile(ctx context.Context, u Upload) (string, error) {
	return s.put(ctx, "file", mediapath.File(s.filesDir, u.Filename), u)
}

// Remove deletes a stored object.
func (s *MediaService) Remove(ctx context.Context, key string) error {
	return s.store.Remove(ctx, key)
}

func (s *MediaService) put(ctx context.Context, kind, key string, u Upload) (string, error) {
	key, err := s.availableKey(ctx, key)
	if err != nil {
		return "", err
	}
	if err := s.store.Put(ctx, key, u.Body, u.Size, u.ContentType); err != nil {
		return "", err
	}
	metrics.UploadBytes.WithLabelValues(kind).Add(float64(u.Size))
	return key, nil
}

// availableKey returns key when nothing is stored under it yet, otherwise
// the key with a short random suffix before its extension.
func (s *MediaService) availableKey(ctx context.Context, key string) (string, error) {
	candidate := key
	for i := 0; i < maxKeyAttempts; i++ {
		taken, err := s.store.Exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = mediapath.WithSuffix(key, s.suffix())
	}
	return "", fmt.Errorf("no free object key for %s after %d attempts", key, maxKeyAttempts)
}
