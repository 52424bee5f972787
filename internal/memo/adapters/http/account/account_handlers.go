// Package account содержит HTTP обработчики регистрации и входа.
package account

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"gomemo/internal/memo/adapters/http/middleware"
	"gomemo/internal/memo/app/dto"
	"gomemo/internal/memo/ports/api"
	"gomemo/internal/memo/validation"
	"gomemo/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister = "account handler: register"
	LogHandlerLogin    = "account handler: login"

	// RegisterResponse - тело ответа на успешную регистрацию.
	RegisterResponse = "success"
)

// Handler содержит HTTP обработчики аккаунтов.
type Handler struct {
	accounts api.AccountUseCase
}

// NewHandler создает новый экземпляр обработчика аккаунтов.
func NewHandler(accounts api.AccountUseCase) *Handler {
	return &Handler{accounts: accounts}
}

// Register обрабатывает POST /users.
func (h *Handler) Register(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerRegister)

	body, err := dto.Decode(c)
	if err != nil {
		return err
	}

	req := dto.NewRegisterRequest(body)
	if err := validation.Registration(req.Input()); err != nil {
		return err
	}

	if _, err := h.accounts.Register(requestCtx, req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return c.SendString(RegisterResponse)
}

// Login обрабатывает POST /users/login.
func (h *Handler) Login(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogin)

	body, err := dto.Decode(c)
	if err != nil {
		return err
	}

	req := dto.NewLoginRequest(body)
	if err := validation.Login(req.Input()); err != nil {
		return err
	}

	session, err := h.accounts.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	return c.JSON(dto.LoginResponse{
		Token: session.Token,
		Email: session.Email,
		Memos: dto.NewMemoList(session.Memos),
	})
}
