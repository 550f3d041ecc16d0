package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// sweepInterval is how often expired windows are dropped from memory.
const sweepInterval = 5 * time.Minute

// RateLimitConfig defines the limit for a specific route or group.
type RateLimitConfig struct {
	Max    int                      // requests allowed per window
	Window time.Duration            // window length
	KeyFn  func(c fiber.Ctx) string // client key (IP, IP+path)
}

type window struct {
	count int
	ends  time.Time
}

// RateLimiter is an in-memory fixed-window rate limiter: each key gets Max
// requests per Window, counted from the key's first request in the window.
// Stop ends the background sweep.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	config  RateLimitConfig
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a rate limiter and starts its sweep goroutine.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		config:  cfg,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.sweep(sweepInterval)
	return rl
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Handler returns a Fiber handler that enforces the limit and reports it
// in X-RateLimit-* headers.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		remaining, ends, ok := rl.take(rl.config.KeyFn(c))

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(ends.Unix(), 10))
		if ok {
			return c.Next()
		}

		retryAfter := int(ends.Sub(rl.now()).Seconds()) + 1
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": fiber.Map{
				"code":       "RATE_LIMITED",
				"message":    "Too many requests. Try again in " + strconv.Itoa(retryAfter) + " seconds.",
				"retryAfter": retryAfter,
			},
		})
	}
}

// Allow counts one request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	_, _, ok := rl.take(key)
	return ok
}

// take counts a request for key, opening a new window when the previous
// one has ended.
func (rl *RateLimiter) take(key string) (remaining int, ends time.Time, ok bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, found := rl.windows[key]
	if !found || !now.Before(w.ends) {
		w = &window{ends: now.Add(rl.config.Window)}
		rl.windows[key] = w
	}
	w.count++
	return max(rl.config.Max-w.count, 0), w.ends, w.count <= rl.config.Max
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.dropExpired()
		}
	}
}

func (rl *RateLimiter) dropExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for key, w := range rl.windows {
		if !now.Before(w.ends) {
			delete(rl.windows, key)
		}
	}
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}

// KeyByIPAndPath limits each client separately per resource.
func KeyByIPAndPath(c fiber.Ctx) string {
	return "ip:" + c.IP() + ":" + c.Path()
}

// Limiters are the API's rate limiter presets.
type Limiters struct {
	Read   *RateLimiter // 100/min per IP
	Write  *RateLimiter // 30/min per IP
	View   *RateLimiter // 60/min per IP and video
	Upload *RateLimiter // 10/hour per IP
}

// NewLimiters builds the preset limiters.
func NewLimiters() *Limiters {
	return &Limiters{
		Read:   NewRateLimiter(RateLimitConfig{Max: 100, Window: time.Minute, KeyFn: KeyByIP}),
		Write:  NewRateLimiter(RateLimitConfig{Max: 30, Window: time.Minute, KeyFn: KeyByIP}),
		View:   NewRateLimiter(RateLimitConfig{Max: 60, Window: time.Minute, KeyFn: KeyByIPAndPath}),
		Upload: NewRateLimiter(RateLimitConfig{Max: 10, Window: time.Hour, KeyFn: KeyByIP}),
	}
}

// Stop ends the sweep of every preset.
func (l *Limiters) Stop() {
	for _, rl := range []*RateLimiter{l.Read, l.Write, l.View, l.Upload} {
		rl.Stop()
	}
}
