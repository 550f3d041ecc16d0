package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Furiouss38/podv2/internal/logging"
	"github.com/Furiouss38/podv2/internal/metrics"
)

const (
	VideoCacheTTL   = 5 * time.Minute
	ChannelCacheTTL = 15 * time.Minute
	StatsCacheTTL   = time.Minute

	statsKey = "stats:catalog"
)

// CacheService provides a Redis cache-aside layer for slug lookups.
type CacheService struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewCacheService creates a new CacheService. If redisURL is empty or connection
// fails, it returns a CacheService with a nil client (cache operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	log := logging.Component("cache")
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{log: log}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, caching disabled")
		return &CacheService{log: log}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		_ = rdb.Close()
		return &CacheService{log: log}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb, log: log}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

// GetVideo retrieves a cached video response. Returns nil if not cached or cache is disabled.
func (c *CacheService) GetVideo(ctx context.Context, slug string) ([]byte, error) {
	return c.get(ctx, videoKey(slug))
}

// SetVideo stores a video response in cache.
func (c *CacheService) SetVideo(ctx context.Context, slug string, data any) error {
	return c.set(ctx, videoKey(slug), data, VideoCacheTTL)
}

// InvalidateVideo removes cached videos by slug.
func (c *CacheService) InvalidateVideo(ctx context.Context, slugs ...string) error {
	return c.del(ctx, videoKey, slugs)
}

// GetChannel retrieves a cached channel response. Returns nil if not cached.
func (c *CacheService) GetChannel(ctx context.Context, slug string) ([]byte, error) {
	return c.get(ctx, channelKey(slug))
}

// SetChannel stores a channel response in cache.
func (c *CacheService) SetChannel(ctx context.Context, slug string, data any) error {
	return c.set(ctx, channelKey(slug), data, ChannelCacheTTL)
}

// InvalidateChannel removes cached channels by slug.
func (c *CacheService) InvalidateChannel(ctx context.Context, slugs ...string) error {
	return c.del(ctx, channelKey, slugs)
}

// GetStats retrieves cached catalogue counters.
func (c *CacheService) GetStats(ctx context.Context) ([]byte, error) {
	return c.get(ctx, statsKey)
}

// SetStats stores catalogue counters in cache.
func (c *CacheService) SetStats(ctx context.Context, data any) error {
	return c.set(ctx, statsKey, data, StatsCacheTTL)
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *CacheService) get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	metrics.CacheHits.Inc()
	return data, nil
}

func (c *CacheService) set(ctx context.Context, key string, data any, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

func (c *CacheService) del(ctx context.Context, keyFn func(string) string, slugs []string) error {
	if c == nil || c.rdb == nil || len(slugs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, keyFn(s))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// warn logs a failed best-effort cache operation.
func (c *CacheService) warn(err error, op string) {
	if err != nil && c != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("cache operation failed")
	}
}

func videoKey(slug string) string {
	return fmt.Sprintf("video:%s", slug)
}

func channelKey(slug string) string {
	return fmt.Sprintf("channel:%s", slug)
}
