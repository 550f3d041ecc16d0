package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Furiouss38/podv2/internal/middleware"
	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/service"
)

type ThemeHandler struct {
	svc *service.ThemeService
}

func NewThemeHandler(svc *service.ThemeService) *ThemeHandler {
	return &ThemeHandler{svc: svc}
}

// List handles GET /api/themes[?channel=id]
func (h *ThemeHandler) List(c fiber.Ctx) error {
	channelID, errMsg := middleware.ParseOptionalID("channel", c.Query("channel"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	themes, err := h.svc.List(c.Context(), channelID)
	if err != nil {
		return writeError(c, err, "Theme", "list themes")
	}
	return c.JSON(themes)
}

// Get handles GET /api/themes/:id
func (h *ThemeHandler) Get(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	t, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err, "Theme", "lookup theme")
	}
	return c.JSON(t)
}

// Create handles POST /api/themes
func (h *ThemeHandler) Create(c fiber.Ctx) error {
	var t model.Theme
	if err := c.Bind().JSON(&t); err != nil {
		return invalidBody(c)
	}
	if errMsg := validateTheme(&t); errMsg != "" {
		return badRequest(c, errMsg)
	}
	t.ID = 0
	if err := h.svc.Save(c.Context(), &t); err != nil {
		return writeError(c, err, "Theme", "create theme")
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// Update handles PUT /api/themes/:id
func (h *ThemeHandler) Update(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	var t model.Theme
	if err := c.Bind().JSON(&t); err != nil {
		return invalidBody(c)
	}
	if errMsg := validateTheme(&t); errMsg != "" {
		return badRequest(c, errMsg)
	}
	if t.ParentID != nil && *t.ParentID == id {
		return badRequest(c, "a theme cannot be its own parent")
	}
	t.ID = id
	if err := h.svc.Save(c.Context(), &t); err != nil {
		return writeError(c, err, "Theme", "update theme")
	}
	return c.JSON(t)
}

// Delete handles DELETE /api/themes/:id
func (h *ThemeHandler) Delete(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return writeError(c, err, "Theme", "delete theme")
	}
	return c.JSON(fiber.Map{"success": true})
}

func validateTheme(t *model.Theme) string {
	title, errMsg := middleware.ValidateTitle(t.Title, middleware.MaxTitleLen)
	if errMsg != "" {
		return errMsg
	}
	t.Title = title
	if t.ChannelID <= 0 {
		return "channelId is required"
	}
	return middleware.ValidateOptional("headband", t.Headband, middleware.MaxPathLen)
}
