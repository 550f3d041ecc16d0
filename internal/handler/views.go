package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Furiouss38/podv2/internal/service"
)

type ViewHandler struct {
	svc *service.ViewService
}

func NewViewHandler(svc *service.ViewService) *ViewHandler {
	return &ViewHandler{svc: svc}
}

// Record handles POST /api/videos/id/:id/views
func (h *ViewHandler) Record(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Hit(c.Context(), id); err != nil {
		return writeError(c, err, "Video", "record view")
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"success": true})
}

// List handles GET /api/videos/id/:id/views
func (h *ViewHandler) List(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	counts, err := h.svc.Counts(c.Context(), id)
	if err != nil {
		return writeError(c, err, "Video", "list views")
	}
	return c.JSON(counts)
}
