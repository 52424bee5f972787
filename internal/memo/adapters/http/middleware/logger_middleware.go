package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gomemo/pkg/logger"
)

// Константы для логирования.
const (
	LogRequestStarted   = "Request started"
	LogRequestCompleted = "Request completed"
	LogRequestFailed    = "Request failed"
	LogErrorHandler     = "Error handler failed"
)

// NewLoggerMiddleware создает промежуточное ПО для логирования HTTP запросов.
// Ошибки цепочки передаются обработчику ошибок приложения здесь, чтобы в лог
// попал итоговый статус ответа.
func NewLoggerMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("ip", c.IP()),
		)

		log.Debug(requestCtx, LogRequestStarted)

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				log.Error(requestCtx, LogErrorHandler, zap.Error(err))
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logFields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if chainErr != nil {
			log.Info(requestCtx, LogRequestFailed, append(logFields, zap.Error(chainErr))...)
			return nil
		}

		log.Info(requestCtx, LogRequestCompleted, logFields...)
		return nil
	}
}
