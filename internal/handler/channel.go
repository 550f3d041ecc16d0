package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Furiouss38/podv2/internal/middleware"
	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/service"
)

type ChannelHandler struct {
	svc *service.ChannelService
}

func NewChannelHandler(svc *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// List handles GET /api/channels[?all=true]
func (h *ChannelHandler) List(c fiber.Ctx) error {
	channels, err := h.svc.List(c.Context(), fiber.Query[bool](c, "all"))
	if err != nil {
		return writeError(c, err, "Channel", "list channels")
	}
	return c.JSON(channels)
}

// GetBySlug handles GET /api/channels/:slug
func (h *ChannelHandler) GetBySlug(c fiber.Ctx) error {
	resp, err := h.svc.Lookup(c.Context(), c.Params("slug"))
	if err != nil {
		return writeError(c, err, "Channel", "lookup channel")
	}
	return c.JSON(resp)
}

// Create handles POST /api/channels
func (h *ChannelHandler) Create(c fiber.Ctx) error {
	ch, ok, err := h.bind(c)
	if !ok {
		return err
	}
	ch.ID = 0
	if err := h.svc.Save(c.Context(), ch); err != nil {
		return writeError(c, err, "Channel", "create channel")
	}
	return c.Status(fiber.StatusCreated).JSON(ch)
}

// Update handles PUT /api/channels/id/:id
func (h *ChannelHandler) Update(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	ch, ok, err := h.bind(c)
	if !ok {
		return err
	}
	ch.ID = id
	if err := h.svc.Save(c.Context(), ch); err != nil {
		return writeError(c, err, "Channel", "update channel")
	}
	return c.JSON(ch)
}

// Delete handles DELETE /api/channels/id/:id
func (h *ChannelHandler) Delete(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return writeError(c, err, "Channel", "delete channel")
	}
	return c.JSON(fiber.Map{"success": true})
}

// bind decodes and validates a channel body. When ok is false the error
// response has already been written and err must be returned as is.
func (h *ChannelHandler) bind(c fiber.Ctx) (*model.Channel, bool, error) {
	var ch model.Channel
	if err := c.Bind().JSON(&ch); err != nil {
		return nil, false, invalidBody(c)
	}

	title, errMsg := middleware.ValidateTitle(ch.Title, middleware.MaxTitleLen)
	if errMsg != "" {
		return nil, false, badRequest(c, errMsg)
	}
	ch.Title = title

	for _, check := range []string{
		middleware.ValidateOptional("headband", ch.Headband, middleware.MaxPathLen),
		middleware.ValidateOptional("color", ch.Color, middleware.MaxColorLen),
	} {
		if check != "" {
			return nil, false, badRequest(c, check)
		}
	}
	return &ch, true, nil
}
