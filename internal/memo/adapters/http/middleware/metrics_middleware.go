package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"gomemo/pkg/metrics"
)

// NewMetricsMiddleware записывает длительность и статус каждого запроса.
// Должно стоять до NewLoggerMiddleware, чтобы видеть итоговый статус.
func NewMetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		route := c.Route().Path
		if c.Response().StatusCode() == fiber.StatusNotFound && route == "/" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Method(), route, c.Response().StatusCode(), time.Since(start))

		return err
	}
}
