package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gomemo/internal/memo/adapters/http/middleware"
	"gomemo/pkg/logger"
)

const (
	healthTimeout = 2 * time.Second

	statusOK          = "ok"
	statusUnavailable = "unavailable"

	logHealthCheckFailed = "health check failed"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler отвечает 200, когда хранилище доступно, и 503 иначе.
func healthHandler(store Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := middleware.RequestContext(c)

		ctx, cancel := context.WithTimeout(requestCtx, healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, logHealthCheckFailed, zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": statusUnavailable})
		}

		return c.JSON(fiber.Map{"status": statusOK})
	}
}
