package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/Furiouss38/podv2/internal/logging"
	"github.com/Furiouss38/podv2/internal/middleware"
	"github.com/Furiouss38/podv2/internal/repository"
	"github.com/Furiouss38/podv2/internal/storage"
)

// writeError maps service errors onto API error responses. what names the
// resource ("Video", "Channel") in messages; action describes the failed
// operation for 500s.
func writeError(c fiber.Ctx, err error, what, action string) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", what+" not found")
	case errors.Is(err, repository.ErrConflict):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "CONFLICT", what+" already exists")
	case errors.Is(err, repository.ErrInvalidReference):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REFERENCE", "Referenced record does not exist or is still in use")
	case errors.Is(err, repository.ErrValueTooLong):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALUE_TOO_LONG", "A field is longer than allowed")
	case errors.Is(err, storage.ErrDisabled):
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "STORAGE_DISABLED", "File uploads are not configured")
	}

	logging.Logger.Error().Err(err).
		Str("request_id", middleware.RequestID(c)).
		Str("action", action).
		Msg("request failed")
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+action)
}

func badRequest(c fiber.Ctx, msg string) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", msg)
}

func invalidBody(c fiber.Ctx) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
}

// pathID parses the :id route parameter.
func pathID(c fiber.Ctx) (int64, string) {
	return middleware.ParseID(c.Params("id"))
}
