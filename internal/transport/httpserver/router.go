// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"partner-quadrant-service/internal/app/service"
	"partner-quadrant-service/internal/metrics"
	"partner-quadrant-service/internal/transport/httpserver/dto"
	"partner-quadrant-service/internal/transport/httpserver/handler"
	"partner-quadrant-service/internal/transport/httpserver/middleware"
	"partner-quadrant-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name         string
	BodyLimit    int
	Debug        bool
	TemplatesDir string
	StaticDir    string
	MetricsPath  string // empty disables the endpoint
	Chart        handler.ChartSettings
}

// Services groups the use cases the HTTP layer exposes.
type Services struct {
	Partners *service.PartnerService
	Charts   *service.ChartService
	Sync     *service.SyncService
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// m may be nil, in which case no request metrics are recorded.
func NewServer(
	cfg ServerConfig,
	svcs Services,
	m *metrics.Metrics,
	v *validator.Validator,
	logger *zap.Logger,
	readiness ...middleware.ReadinessCheck,
) *Server {
	engine := html.New(cfg.TemplatesDir, ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health checks go first so probes answer even when later middleware misbehaves
	app.Use(middleware.NewHealthCheck(readiness...))

	app.Use(requestid.New())
	app.Use(middleware.Logger(logger))
	if m != nil {
		app.Use(middleware.Metrics(m))
	}
	app.Use(cors.New())
	app.Use(compress.New())

	if cfg.StaticDir != "" {
		app.Static("/static", cfg.StaticDir)
	}
	if m != nil && cfg.MetricsPath != "" {
		app.Get(cfg.MetricsPath, adaptor.HTTPHandler(m.Handler()))
	}

	partnerHandler := handler.NewPartnerHandler(svcs.Partners, v, logger)
	chartHandler := handler.NewChartHandler(svcs.Charts, cfg.Chart, v, logger)
	adminHandler := handler.NewAdminHandler(svcs.Sync, logger)
	dashboardHandler := handler.NewDashboardHandler(svcs.Partners, svcs.Charts, cfg.Chart, logger)

	registerRoutes(app, partnerHandler, chartHandler, adminHandler, dashboardHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	partnerHandler *handler.PartnerHandler,
	chartHandler *handler.ChartHandler,
	adminHandler *handler.AdminHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	v1 := app.Group("/api/v1")

	partners := v1.Group("/partners")
	partners.Get("/", partnerHandler.List)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/:id", partnerHandler.Get)
	partners.Put("/:id", partnerHandler.Update)
	partners.Delete("/:id", partnerHandler.Delete)
	partners.Get("/:id/score", partnerHandler.Score)

	v1.Get("/chart", chartHandler.Layout)
	v1.Get("/chart.svg", chartHandler.SVG)

	admin := v1.Group("/admin")
	admin.Post("/sync", adminHandler.SyncAll)
	admin.Post("/sync/:source", adminHandler.SyncSource)
	admin.Get("/sources", adminHandler.Sources)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		apiCode := handler.CodeInternal
		message := "internal error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
			if code == fiber.StatusNotFound {
				apiCode = handler.CodeNotFound
			} else if code < fiber.StatusInternalServerError {
				apiCode = handler.CodeInvalidParams
			}
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= fiber.StatusInternalServerError:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(dto.ErrorResponse{
			Error: message,
			Code:  apiCode,
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
