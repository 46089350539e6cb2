package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"partner-quadrant-service/internal/app/service"
	"partner-quadrant-service/internal/domain"
	"partner-quadrant-service/internal/render"
	"partner-quadrant-service/internal/transport/httpserver/dto"
	"partner-quadrant-service/internal/validator"
)

// ChartSettings bounds the viewports clients may request.
type ChartSettings struct {
	DefaultWidth  float64
	DefaultHeight float64
	MaxWidth      float64
	MaxHeight     float64
}

// ChartHandler serves the quadrant layout as JSON and SVG.
type ChartHandler struct {
	service   *service.ChartService
	settings  ChartSettings
	validator *validator.Validator
	logger    *zap.Logger
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(svc *service.ChartService, settings ChartSettings, v *validator.Validator, logger *zap.Logger) *ChartHandler {
	return &ChartHandler{
		service:   svc,
		settings:  settings,
		validator: v,
		logger:    logger,
	}
}

// Layout handles GET /api/v1/chart
func (h *ChartHandler) Layout(c *fiber.Ctx) error {
	layout, ok, err := h.layout(c)
	if !ok {
		return err
	}

	return c.JSON(layout)
}

// SVG handles GET /api/v1/chart.svg
func (h *ChartHandler) SVG(c *fiber.Ctx) error {
	layout, ok, err := h.layout(c)
	if !ok {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml; charset=utf-8")
	return c.SendString(render.SVG(layout))
}

// layout resolves the viewport and loads the layout. When ok is false the
// error response has already been written.
func (h *ChartHandler) layout(c *fiber.Ctx) (domain.ChartLayout, bool, error) {
	var q dto.ChartQuery
	if err := c.QueryParser(&q); err != nil {
		return domain.ChartLayout{}, false,
			respondError(c, fiber.StatusBadRequest, CodeInvalidParams, "invalid query parameters", nil)
	}
	if err := h.validator.Validate(&q); err != nil {
		return domain.ChartLayout{}, false,
			respondError(c, fiber.StatusBadRequest, CodeValidation, "validation failed", err)
	}

	width, height := q.Resolve(h.settings.DefaultWidth, h.settings.DefaultHeight)
	if (h.settings.MaxWidth > 0 && width > h.settings.MaxWidth) ||
		(h.settings.MaxHeight > 0 && height > h.settings.MaxHeight) {
		return domain.ChartLayout{}, false,
			respondError(c, fiber.StatusBadRequest, CodeInvalidViewport, "viewport too large", fiber.Map{
				"max_width":  h.settings.MaxWidth,
				"max_height": h.settings.MaxHeight,
			})
	}

	layout, err := h.service.Layout(c.UserContext(), width, height)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidViewport) {
			return domain.ChartLayout{}, false,
				respondError(c, fiber.StatusBadRequest, CodeInvalidViewport, err.Error(), fiber.Map{
					"width":  width,
					"height": height,
				})
		}

		h.logger.Error("chart layout failed", zap.Error(err))
		return domain.ChartLayout{}, false,
			respondError(c, fiber.StatusInternalServerError, CodeInternal, "failed to build chart", nil)
	}

	return layout, true, nil
}
