// Package memos содержит HTTP обработчики заметок.
package memos

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
	LogHandlerAddMemo    = "memo handler: add memo"
	LogHandlerDeleteMemo = "memo handler: delete memo"
)

// Handler содержит HTTP обработчики заметок.
type Handler struct {
	memos api.MemoUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(memos api.MemoUseCase) *Handler {
	return &Handler{memos: memos}
}

// AddMemo обрабатывает POST /users/addMemo.
func (h *Handler) AddMemo(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerAddMemo)

	body, err := dto.Decode(c)
	if err != nil {
		return err
	}

	req := dto.NewAddMemoRequest(body)
	if err := validation.AddMemo(req.Input()); err != nil {
		return err
	}

	memos, err := h.memos.AddMemo(requestCtx, middleware.UserID(c), req.Content)
	if err != nil {
		return fmt.Errorf("add memo: %w", err)
	}

	return c.JSON(dto.NewMemoList(memos))
}

// DeleteMemo обрабатывает DELETE /users/deleteMemo.
func (h *Handler) DeleteMemo(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteMemo)

	body, err := dto.Decode(c)
	if err != nil {
		return err
	}

	req := dto.NewDeleteMemoRequest(body)
	if err := validation.DeleteMemo(req.Input()); err != nil {
		return err
	}

	memos, err := h.memos.DeleteMemo(requestCtx, middleware.UserID(c), req.MemoID)
	if err != nil {
		return fmt.Errorf("delete memo: %w", err)
	}

	return c.JSON(dto.NewMemoList(memos))
}
