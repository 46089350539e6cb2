package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"partner-quadrant-service/internal/app/service"
	"partner-quadrant-service/internal/transport/httpserver/dto"
)

// AdminHandler handles record store sync requests.
type AdminHandler struct {
	syncService *service.SyncService
	logger      *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(syncSvc *service.SyncService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		syncService: syncSvc,
		logger:      logger,
	}
}

// SyncAll handles POST /api/v1/admin/sync
func (h *AdminHandler) SyncAll(c *fiber.Ctx) error {
	h.logger.Info("manual sync triggered")

	results := h.syncService.SyncAll(c.UserContext())

	return c.JSON(dto.FromSyncResults(results))
}

// SyncSource handles POST /api/v1/admin/sync/:source
func (h *AdminHandler) SyncSource(c *fiber.Ctx) error {
	name := c.Params("source")

	h.logger.Info("manual source sync triggered", zap.String("source", name))

	result, err := h.syncService.SyncSource(c.UserContext(), name)
	if errors.Is(err, service.ErrSourceNotFound) {
		return respondError(c, fiber.StatusNotFound, CodeSourceNotFound, "source not found", nil)
	}
	if err != nil {
		return respondError(c, fiber.StatusBadGateway, CodeSyncFailed, err.Error(), dto.FromSyncResult(*result))
	}

	return c.JSON(dto.FromSyncResult(*result))
}

// Sources handles GET /api/v1/admin/sources
func (h *AdminHandler) Sources(c *fiber.Ctx) error {
	return c.JSON(dto.SourcesResponse{Sources: h.syncService.SourceNames()})
}
