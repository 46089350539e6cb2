package handler

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"partner-quadrant-service/internal/app/service"
	"partner-quadrant-service/internal/render"
	"partner-quadrant-service/internal/transport/httpserver/dto"
)

// DashboardHandler renders the HTML dashboard.
type DashboardHandler struct {
	partners *service.PartnerService
	charts   *service.ChartService
	settings ChartSettings
	logger   *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	partners *service.PartnerService,
	charts *service.ChartService,
	settings ChartSettings,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		partners: partners,
		charts:   charts,
		settings: settings,
		logger:   logger,
	}
}

// Render handles GET /dashboard
// The chart is inlined as SVG for the default viewport next to the partner table.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	ctx := c.UserContext()

	partners, err := h.partners.List(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load partners")
	}

	layout, err := h.charts.Layout(ctx, h.settings.DefaultWidth, h.settings.DefaultHeight)
	if err != nil {
		h.logger.Error("dashboard chart failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build chart")
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":     "Partner Quadrant",
		"Chart":     template.HTML(render.SVG(layout)), // renderer escapes all text
		"Partners":  dto.FromDomainPartners(partners).Partners,
		"HoverOnly": len(layout.Labels.HoverOnly),
	}, "layouts/base")
}
