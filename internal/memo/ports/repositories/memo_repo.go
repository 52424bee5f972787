package repositories

import (
	"context"

	"gomemo/internal/memo/domain/entities"
)

// MemoRepository хранит упорядоченные списки заметок пользователей.
type MemoRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]entities.Memo, error)

	// Append добавляет заметку в конец списка и возвращает ее с назначенным ID.
	Append(ctx context.Context, userID string, memo entities.Memo) (*entities.Memo, error)

	// Delete удаляет заметку пользователя. Если ее нет, возвращает entities.ErrMemoNotFound.
	Delete(ctx context.Context, userID, memoID string) error
}
