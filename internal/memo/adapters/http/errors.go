package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gomemo/internal/memo/adapters/http/middleware"
	"gomemo/internal/memo/app/dto"
	"gomemo/internal/memo/domain/entities"
	"gomemo/internal/memo/domain/services"
	"gomemo/internal/memo/validation"
	"gomemo/pkg/logger"
)

// Тексты ответов клиенту.
const (
	MsgUserRegistered     = "User already registered."
	MsgInvalidCredentials = "Invalid email or password."
	MsgNotAuthorized      = "Not authorized."
	MsgMemoNotFound       = "Memo not found."
	MsgInvalidBody        = "Invalid request body."
	MsgInternalError      = "Internal Server Error"

	LogUnexpectedError = "unexpected error while serving request"
)

// ErrorHandler переводит ошибки обработчиков в текстовые ответы.
func ErrorHandler(c fiber.Ctx, err error) error {
	status, message := classify(err)

	if status >= fiber.StatusInternalServerError {
		requestCtx := middleware.RequestContext(c)
		logger.Log(requestCtx).Error(requestCtx, LogUnexpectedError,
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(message)
}

func classify(err error) (int, string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, verr.Message
	}

	switch {
	case errors.Is(err, dto.ErrInvalidBody):
		return fiber.StatusBadRequest, MsgInvalidBody
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, MsgUserRegistered
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusBadRequest, MsgInvalidCredentials
	case errors.Is(err, services.ErrNotAuthorized):
		return fiber.StatusBadRequest, MsgNotAuthorized
	case errors.Is(err, entities.ErrMemoNotFound):
		return fiber.StatusBadRequest, MsgMemoNotFound
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, MsgInternalError
}
