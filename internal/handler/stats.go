package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Furiouss38/podv2/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.Catalog(c.Context())
	if err != nil {
		return writeError(c, err, "Statistics", "fetch statistics")
	}
	return c.JSON(stats)
}
