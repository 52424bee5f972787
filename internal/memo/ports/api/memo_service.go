package api

import (
	"context"

	"gomemo/internal/memo/domain/entities"
)

// MemoUseCase определяет операции над заметками аутентифицированного пользователя.
type MemoUseCase interface {
	AddMemo(ctx context.Context, userID, content string) ([]entities.Memo, error)

	DeleteMemo(ctx context.Context, userID, memoID string) ([]entities.Memo, error)
}
