package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Furiouss38/podv2/internal/middleware"
	"github.com/Furiouss38/podv2/internal/service"
)

type UploadHandler struct {
	media *service.MediaService
}

func NewUploadHandler(media *service.MediaService) *UploadHandler {
	return &UploadHandler{media: media}
}

// UploadFile handles POST /api/files (multipart field "file"). The stored
// path is returned for use as a headband, icon or thumbnail.
func (h *UploadHandler) UploadFile(c fiber.Ctx) error {
	upload, closeFn, err := formUpload(c)
	if err != nil {
		return err
	}
	if upload == nil {
		return nil
	}
	defer closeFn()

	key, err := h.media.PutFile(c.Context(), *upload)
	if err != nil {
		return writeError(c, err, "File", "store file")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"path": key})
}

// formUpload opens the multipart "file" field. A nil upload with a nil
// error means the 400 response has been written already.
func formUpload(c fiber.Ctx) (*service.Upload, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FILE", "multipart field \"file\" is required")
	}
	if fh.Filename == "" || len(fh.Filename) > middleware.MaxPathLen {
		return nil, nil, badRequest(c, "file name must be 1-255 characters")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, writeError(c, err, "File", "read upload")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &service.Upload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
