package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

// newTestLimiter returns a limiter driven by a fake clock the test can advance.
func newTestLimiter(t *testing.T, max int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(RateLimitConfig{Max: max, Window: window, KeyFn: KeyByIP})
	t.Cleanup(rl.Stop)
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl, _ := newTestLimiter(t, 5, time.Minute)

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("test-ip") {
		t.Fatal("6th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)

	rl.Allow("ip-a")
	rl.Allow("ip-a")

	if rl.Allow("ip-a") {
		t.Fatal("ip-a should be blocked")
	}
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b should be allowed (independent key)")
	}
}

func TestRateLimiter_FixedWindowResets(t *testing.T) {
	rl, now := newTestLimiter(t, 2, time.Minute)

	rl.Allow("test")
	*now = now.Add(50 * time.Second)
	rl.Allow("test")
	if rl.Allow("test") {
		t.Fatal("should be blocked within window")
	}

	// The window runs from the first request, not the latest one.
	*now = now.Add(10 * time.Second)
	if !rl.Allow("test") {
		t.Fatal("should be allowed once the window has ended")
	}
}

func TestRateLimiter_DropExpired(t *testing.T) {
	rl, now := newTestLimiter(t, 1, time.Minute)
	rl.Allow("old")
	*now = now.Add(45 * time.Second)
	rl.Allow("recent")

	*now = now.Add(30 * time.Second)
	rl.dropExpired()

	if _, ok := rl.windows["old"]; ok {
		t.Error("expired window should be dropped")
	}
	if _, ok := rl.windows["recent"]; !ok {
		t.Error("live window should be kept")
	}
}

func TestRateLimiter_StopEndsSweep(t *testing.T) {
	rl := &RateLimiter{windows: map[string]*window{}, now: time.Now, stop: make(chan struct{})}
	done := make(chan struct{})
	go func() {
		rl.sweep(time.Millisecond)
		close(done)
	}()

	rl.Stop()
	rl.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep did not return after Stop")
	}
}

func TestRateLimiter_Handler(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	app := fiber.New()
	app.Get("/ping", rl.Handler(), func(c fiber.Ctx) error {
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first request status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("remaining = %q, want 0", got)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", resp.StatusCode)
	}
	if got := resp.Header.Get("Retry-After"); got != "61" {
		t.Errorf("Retry-After = %q, want 61", got)
	}
}

func TestLimiters_Presets(t *testing.T) {
	l := NewLimiters()
	t.Cleanup(l.Stop)

	tests := []struct {
		name string
		rl   *RateLimiter
		max  int
	}{
		{"read", l.Read, 100},
		{"write", l.Write, 30},
		{"view", l.View, 60},
		{"upload", l.Upload, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.max; i++ {
				if !tt.rl.Allow("ip:127.0.0.1") {
					t.Fatalf("request %d should be allowed (max %d)", i+1, tt.max)
				}
			}
			if tt.rl.Allow("ip:127.0.0.1") {
				t.Fatalf("request %d should be blocked", tt.max+1)
			}
		})
	}
}
