package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Furiouss38/podv2/internal/logging"
)

// ErrDisabled is returned by a Store built without an endpoint.
var ErrDisabled = errors.New("object storage is not configured")

// ObjectStore keeps media files under the object keys computed by mediapath.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore is an ObjectStore backed by a MinIO (or any S3-compatible) bucket.
// A MinioStore with a nil client is disabled: writes fail with ErrDisabled.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the object store and creates the bucket when
// it does not exist yet. An empty endpoint yields a disabled store.
func NewMinioStore(ctx context.Context, opts Options) (*MinioStore, error) {
	log := logging.Component("storage")
	if opts.Endpoint == "" {
		log.Info().Msg("minio: no endpoint configured, uploads disabled")
		return &MinioStore{bucket: opts.Bucket}, nil
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", opts.Bucket, err)
		}
		log.Info().Str("bucket", opts.Bucket).Msg("minio: bucket created")
	}

	log.Info().Str("endpoint", opts.Endpoint).Str("bucket", opts.Bucket).Msg("minio: connected")
	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

// Enabled reports whether the store has a backend.
func (s *MinioStore) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *MinioStore) Remove(ctx context.Context, key string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Exists reports whether an object is stored under key.
func (s *MinioStore) Exists(ctx context.Context, key string) (bool, error) {
	if !s.Enabled() {
		return false, ErrDisabled
	}
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", key, err)
}

// Ping checks the bucket is reachable.
func (s *MinioStore) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s missing", s.bucket)
	}
	return nil
}
