package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Furiouss38/podv2/internal/middleware"
	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/service"
)

type VideoHandler struct {
	svc     *service.VideoService
	choices middleware.Choices
}

func NewVideoHandler(svc *service.VideoService, choices middleware.Choices) *VideoHandler {
	return &VideoHandler{svc: svc, choices: choices}
}

// List handles GET /api/videos?owner=&type=&discipline=&tag=&limit=&offset=
func (h *VideoHandler) List(c fiber.Ctx) error {
	var f model.VideoFilter
	for _, q := range []struct {
		name string
		dst  *int64
	}{
		{"owner", &f.OwnerID},
		{"type", &f.TypeID},
		{"discipline", &f.DisciplineID},
	} {
		id, errMsg := middleware.ParseOptionalID(q.name, c.Query(q.name))
		if errMsg != "" {
			return badRequest(c, errMsg)
		}
		*q.dst = id
	}
	f.Tag = c.Query("tag")
	f.Limit = fiber.Query[int](c, "limit")
	f.Offset = fiber.Query[int](c, "offset")
	if f.Limit < 0 || f.Offset < 0 {
		return badRequest(c, "limit and offset must be non-negative")
	}

	videos, err := h.svc.List(c.Context(), f)
	if err != nil {
		return writeError(c, err, "Video", "list videos")
	}
	return c.JSON(videos)
}

// GetBySlug handles GET /api/videos/:slug
func (h *VideoHandler) GetBySlug(c fiber.Ctx) error {
	resp, err := h.svc.Lookup(c.Context(), c.Params("slug"))
	if err != nil {
		return writeError(c, err, "Video", "lookup video")
	}
	return c.JSON(resp)
}

// Get handles GET /api/videos/id/:id
func (h *VideoHandler) Get(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	resp, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err, "Video", "lookup video")
	}
	return c.JSON(resp)
}

// Create handles POST /api/videos
func (h *VideoHandler) Create(c fiber.Ctx) error {
	var req model.VideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}
	if errMsg := h.validate(&req); errMsg != "" {
		return badRequest(c, errMsg)
	}

	resp, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return writeError(c, err, "Video", "create video")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update handles PUT /api/videos/id/:id
func (h *VideoHandler) Update(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	var req model.VideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}
	if errMsg := h.validate(&req); errMsg != "" {
		return badRequest(c, errMsg)
	}

	resp, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return writeError(c, err, "Video", "update video")
	}
	return c.JSON(resp)
}

// Delete handles DELETE /api/videos/id/:id
func (h *VideoHandler) Delete(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return writeError(c, err, "Video", "delete video")
	}
	return c.JSON(fiber.Map{"success": true})
}

// UploadFile handles PUT /api/videos/id/:id/file (multipart field "file")
func (h *VideoHandler) UploadFile(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	upload, closeFn, err := formUpload(c)
	if err != nil {
		return err
	}
	if upload == nil {
		return nil
	}
	defer closeFn()

	resp, err := h.svc.AttachFile(c.Context(), id, *upload)
	if err != nil {
		return writeError(c, err, "Video", "store video file")
	}
	return c.JSON(resp)
}

func (h *VideoHandler) validate(req *model.VideoRequest) string {
	title, errMsg := middleware.ValidateTitle(req.Title, middleware.MaxVideoTitleLen)
	if errMsg != "" {
		return errMsg
	}
	req.Title = title

	if req.OwnerID <= 0 {
		return "ownerId is required"
	}
	if req.TypeID < 0 {
		return "typeId must be a positive integer"
	}
	if msg := h.choices.ValidateCursus(req.Cursus); msg != "" {
		return msg
	}
	if msg := h.choices.ValidateLang(req.MainLang); msg != "" {
		return msg
	}
	for _, msg := range []string{
		middleware.ValidateOptional("video", req.File, middleware.MaxPathLen),
		middleware.ValidateOptional("password", req.Password, middleware.MaxPasswordLen),
		middleware.ValidateOptional("thumbnails", req.Thumbnails, middleware.MaxPathLen),
	} {
		if msg != "" {
			return msg
		}
	}
	return ""
}
