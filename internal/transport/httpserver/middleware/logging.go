package middleware

import (
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logger returns a middleware that logs HTTP requests. 5xx responses are
// logged at error, 4xx at warn, everything else at debug. A panic further
// down the chain is logged with its stack and answered as a 500.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := nextRecovering(c, logger)

		status := responseStatus(c, err)
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("request_id", requestID(c)),
		}

		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request error", fields...)
		default:
			logger.Debug("request completed", fields...)
		}

		return err
	}
}

// nextRecovering runs the rest of the chain and turns a panic into a 500
// error for the app's error handler.
func nextRecovering(c *fiber.Ctx, logger *zap.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
				zap.String("path", c.Path()),
				zap.String("request_id", requestID(c)),
			)
			err = fiber.NewError(fiber.StatusInternalServerError, "internal server error")
		}
	}()

	return c.Next()
}

// responseStatus returns the status the client will see. An error still
// unhandled at this point carries its own code, or becomes a 500.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}
	return fiber.StatusInternalServerError
}

// requestID returns the id set by the requestid middleware, if any.
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
