package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// corsMaxAge is how long browsers may cache a preflight answer, in seconds.
const corsMaxAge = 24 * 60 * 60

// ParseOrigins splits the CORS_ORIGINS setting into allowed origins.
// Blank entries and duplicates are dropped; an empty setting or one that
// lists "*" allows every origin.
func ParseOrigins(setting string) []string {
	var origins []string
	for _, o := range strings.Split(setting, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return []string{"*"}
		}
		if o != "" && !slices.Contains(origins, o) {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// NewCORS returns the API's CORS middleware. Browsers may read the request
// id and rate limit headers of responses.
func NewCORS(setting string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: ParseOrigins(setting),
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodDelete,
			fiber.MethodOptions,
		},
		AllowHeaders:  []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", fiber.HeaderRetryAfter},
		MaxAge:        corsMaxAge,
	})
}
