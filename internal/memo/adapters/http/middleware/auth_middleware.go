package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gomemo/internal/memo/ports/services"
	"gomemo/pkg/logger"
)

// Константы для логирования и ответов.
const (
	LogAuthMiddleware = "auth middleware"

	MsgNoToken      = "Access denied. No token provided."
	MsgInvalidToken = "Invalid token."

	logNoAuthHeader       = "no authorization header provided"
	logInvalidTokenFormat = "invalid token format"
	logTokenRejected      = "token rejected"

	bearerPrefix = "Bearer "
)

// Ошибки аутентификации. Обработчик ошибок отдает их как 401 с текстом сообщения.
var (
	ErrNoToken      = fiber.NewError(fiber.StatusUnauthorized, MsgNoToken)
	ErrInvalidToken = fiber.NewError(fiber.StatusUnauthorized, MsgInvalidToken)
)

// NewAuthMiddleware проверяет bearer-токен и сохраняет ID пользователя в Locals.
// Запросы без валидного токена не доходят до обработчиков.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, logNoAuthHeader)
			return ErrNoToken
		}

		token, ok := strings.CutPrefix(authHeader, bearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			log.Debug(requestCtx, logInvalidTokenFormat)
			return ErrInvalidToken
		}

		userID, err := tokenService.ValidateToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, logTokenRejected, zap.Error(err))
			return ErrInvalidToken
		}

		c.Locals(localsUserID, userID)

		return c.Next()
	}
}

// UserID возвращает ID пользователя, установленный NewAuthMiddleware.
func UserID(c fiber.Ctx) string {
	userID, _ := c.Locals(localsUserID).(string)
	return userID
}
