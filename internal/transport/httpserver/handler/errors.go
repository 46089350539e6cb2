// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"partner-quadrant-service/internal/transport/httpserver/dto"
)

// Error codes carried in dto.ErrorResponse.
const (
	CodeInvalidParams   = "INVALID_PARAMS"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidID       = "INVALID_ID"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidViewport = "INVALID_VIEWPORT"
	CodeSourceNotFound  = "SOURCE_NOT_FOUND"
	CodeSyncFailed      = "SYNC_FAILED"
	CodeInternal        = "INTERNAL_ERROR"
)

func respondError(c *fiber.Ctx, status int, code, message string, details any) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// partnerID reads the :id path parameter and checks it is a UUID.
func partnerID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
