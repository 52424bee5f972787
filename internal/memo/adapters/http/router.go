// Package http содержит компоненты HTTP сервера сервиса заметок.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gomemo/internal/memo/adapters/http/account"
	"gomemo/internal/memo/adapters/http/memos"
	"gomemo/internal/memo/adapters/http/middleware"
	"gomemo/internal/memo/ports/api"
	"gomemo/internal/memo/ports/services"
)

// Dependencies - зависимости HTTP слоя.
type Dependencies struct {
	Accounts api.AccountUseCase
	Memos    api.MemoUseCase
	Tokens   services.TokenService
	Store    Pinger
}

// NewApp создает fiber-приложение с обработчиком ошибок и маршрутами.
func NewApp(cfg fiber.Config, deps Dependencies) *fiber.App {
	cfg.ErrorHandler = ErrorHandler

	app := fiber.New(cfg)
	SetupRouter(app, deps)

	return app
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	accountHandler := account.NewHandler(deps.Accounts)
	memoHandler := memos.NewHandler(deps.Memos)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewMetricsMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", healthHandler(deps.Store))

	users := app.Group("/users")
	users.Post("/", accountHandler.Register)
	users.Post("/login", accountHandler.Login)

	// Маршруты заметок (требуют авторизации).
	auth := middleware.NewAuthMiddleware(deps.Tokens)
	users.Post("/addMemo", auth, memoHandler.AddMemo)
	users.Delete("/deleteMemo", auth, memoHandler.DeleteMemo)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(_ fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}
