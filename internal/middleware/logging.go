package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Furiouss38/podv2/internal/logging"
	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/pkg/hash"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID returns the id assigned to the request by NewRequestLogger.
func RequestID(c fiber.Ctx) string {
	if id, ok := c.Locals("requestId").(string); ok {
		return id
	}
	return ""
}

// NewRequestLogger returns a Fiber middleware that logs each request as
// structured JSON via zerolog. A client-supplied X-Request-ID is reused,
// otherwise a new uuid is assigned and echoed back. Raw IPs are hashed and
// slugs/ids in the path are replaced with placeholders.
func NewRequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get(RequestIDHeader)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}
		c.Locals("requestId", reqID)
		c.Set(RequestIDHeader, reqID)

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		evt := logging.Logger.Info()
		if status >= 500 {
			evt = logging.Logger.Error()
		} else if status >= 400 {
			evt = logging.Logger.Warn()
		}

		evt.
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", metrics.SanitizeEndpoint(c.Path())).
			Int("status", status).
			Dur("duration_ms", duration).
			Str("ip_hash", hash.Short(c.IP(), 12)).
			Int("bytes_sent", len(c.Response().Body())).
			Msg("request")

		return err
	}
}
