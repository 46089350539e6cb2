package middleware

import (
	"github.com/gofiber/fiber/v2"

	"partner-quadrant-service/internal/metrics"
)

// Metrics counts requests by method, matched route and status class.
// Routes are the registered patterns, so /partners/:id stays one series.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		m.HTTPRequest(c.Method(), c.Route().Path, responseStatus(c, err))

		return err
	}
}
