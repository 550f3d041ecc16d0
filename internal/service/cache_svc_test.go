package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := NewCacheService("redis://" + mr.Addr())
	if cache.Client() == nil {
		t.Fatal("cache should be enabled against miniredis")
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestCacheService_Disabled(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*CacheService{nil, NewCacheService("")} {
		if c.Client() != nil {
			t.Fatal("expected nil client")
		}
		if data, err := c.GetVideo(ctx, "0001-a"); data != nil || err != nil {
			t.Errorf("GetVideo = %v, %v; want nil, nil", data, err)
		}
		if err := c.SetVideo(ctx, "0001-a", map[string]int{"id": 1}); err != nil {
			t.Errorf("SetVideo: %v", err)
		}
		if err := c.InvalidateChannel(ctx, "a", "b"); err != nil {
			t.Errorf("InvalidateChannel: %v", err)
		}
		if err := c.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	}
}

func TestCacheService_InvalidURLDisables(t *testing.T) {
	if NewCacheService("not a url").Client() != nil {
		t.Fatal("invalid URL should disable the cache")
	}
}

func TestCacheService_SetGetInvalidate(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.SetVideo(ctx, "0007-intro", map[string]string{"title": "Intro"}); err != nil {
		t.Fatalf("SetVideo: %v", err)
	}
	if !mr.Exists("video:0007-intro") {
		t.Fatal("expected key video:0007-intro")
	}
	if ttl := mr.TTL("video:0007-intro"); ttl != VideoCacheTTL {
		t.Errorf("ttl = %s, want %s", ttl, VideoCacheTTL)
	}

	data, err := cache.GetVideo(ctx, "0007-intro")
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if string(data) != `{"title":"Intro"}` {
		t.Errorf("data = %s", data)
	}

	if err := cache.InvalidateVideo(ctx, "", "0007-intro"); err != nil {
		t.Fatalf("InvalidateVideo: %v", err)
	}
	data, err = cache.GetVideo(ctx, "0007-intro")
	if err != nil || data != nil {
		t.Errorf("after invalidate got %s, %v", data, err)
	}
}

func TestCacheService_ChannelKeys(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	_ = cache.SetChannel(ctx, "old", 1)
	_ = cache.SetChannel(ctx, "new", 2)
	if ttl := mr.TTL("channel:new"); ttl != ChannelCacheTTL {
		t.Errorf("ttl = %s, want %s", ttl, ChannelCacheTTL)
	}
	if err := cache.InvalidateChannel(ctx, "old", "new"); err != nil {
		t.Fatalf("InvalidateChannel: %v", err)
	}
	if mr.Exists("channel:old") || mr.Exists("channel:new") {
		t.Error("channel keys should be gone")
	}
}
