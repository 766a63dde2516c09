// Package middleware provides the Fiber middleware used by the
// vessel-inspection service.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
)

// RequestLogger emits one structured JSON line per served request with
// method, path, status and latency.
func RequestLogger(logger *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.HTTPRequest(
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			time.Since(start).Milliseconds(),
		)
		return err
	}
}
