package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Collectors are created eagerly so code paths can record into them even
// when Init was never called (tests); Init only registers them.
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pod_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pod_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pod_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pod_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	RecordSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pod_record_saves_total",
			Help: "Saved records, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	IdentitySource = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pod_video_identity_source_total",
			Help: "Where the identity used for a new video slug came from (sequence, latest, constant).",
		},
		[]string{"source"},
	)

	ViewsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pod_views_recorded_total",
			Help: "Video views flushed to storage.",
		},
	)

	UploadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pod_upload_bytes_total",
			Help: "Bytes written to the object store, by kind.",
		},
		[]string{"kind"},
	)
)

// Init registers all collectors, plus pool gauges when pool is set.
// Call once at startup.
func Init(pool *pgxpool.Pool) {
	if pool != nil {
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "pod_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 {
					return float64(pool.Stat().AcquiredConns())
				},
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "pod_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 {
					return float64(pool.Stat().IdleConns())
				},
			),
		)
	}

	prometheus.MustRegister(
		RequestDuration,
		RequestsInFlight,
		CacheHits,
		CacheMisses,
		RecordSaves,
		IdentitySource,
		ViewsRecorded,
		UploadBytes,
	)
}

// Outcome labels a save result for RecordSaves.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Middleware records request duration and in-flight count.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Fiber hands out slices backed by the fasthttp buffer; copy before
		// c.Next() may reuse it.
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := SanitizeEndpoint(path)

		RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		RequestsInFlight.Dec()

		return err
	}
}

// SanitizeEndpoint replaces slugs and ids in a path with placeholders to
// keep label cardinality bounded.
func SanitizeEndpoint(path string) string {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		prev := parts[i-1]
		switch {
		case prev == "id":
			parts[i] = ":id"
		case prev == "channels" || prev == "videos":
			if parts[i] != "id" {
				parts[i] = ":slug"
			}
		case prev == "themes" || prev == "types" || prev == "disciplines" || prev == "owners":
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

// Handler serves the Prometheus /metrics endpoint via Fiber.
func Handler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
