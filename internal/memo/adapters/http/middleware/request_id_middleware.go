// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"gomemo/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

type localsKey int

const (
	localsRequestContext localsKey = iota
	localsUserID
)

// NewRequestIDMiddleware назначает запросу идентификатор и сохраняет контекст запроса
// с этим идентификатором в Locals. Небезопасный идентификатор клиента заменяется новым.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := logger.AcceptRequestID(c.Get(HeaderRequestID))
		c.Set(HeaderRequestID, requestID)

		c.Locals(localsRequestContext, logger.NewRequestIDContext(c.Context(), requestID))

		return c.Next()
	}
}

// RequestContext возвращает контекст запроса с идентификатором запроса.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localsRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}
