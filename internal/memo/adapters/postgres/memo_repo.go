package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gomemo/internal/memo/domain/entities"
	"gomemo/internal/memo/ports/repositories"
	"gomemo/pkg/logger"
)

// MemoRepository хранит заметки в таблице memos. Порядок списка задается колонкой seq.
type MemoRepository struct {
	pool PgxPoolInterface
}

// NewMemoRepository создает новый экземпляр репозитория заметок.
func NewMemoRepository(pool PgxPoolInterface) repositories.MemoRepository {
	return &MemoRepository{pool: pool}
}

// ListByUserID возвращает заметки пользователя в порядке добавления.
func (r *MemoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Memo, error) {
	log := logger.Log(ctx).With(zap.String("repository", "memo"), zap.String("method", "ListByUserID"))

	query := `
        SELECT id::text, content, created_at
        FROM memos
        WHERE user_id = $1
        ORDER BY seq
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		log.Error(ctx, "error listing memos", zap.Error(err))
		return nil, fmt.Errorf("error querying memos: %w", err)
	}
	defer rows.Close()

	memos := make([]entities.Memo, 0)
	for rows.Next() {
		var memo entities.Memo
		if err := rows.Scan(&memo.ID, &memo.Content, &memo.CreatedAt); err != nil {
			log.Error(ctx, "error scanning memo", zap.Error(err))
			return nil, fmt.Errorf("error scanning memo: %w", err)
		}
		memos = append(memos, memo)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating memos", zap.Error(err))
		return nil, fmt.Errorf("error iterating memos: %w", err)
	}

	return memos, nil
}

// Append добавляет заметку в конец списка пользователя.
func (r *MemoRepository) Append(ctx context.Context, userID string, memo entities.Memo) (*entities.Memo, error) {
	log := logger.Log(ctx).With(zap.String("repository", "memo"), zap.String("method", "Append"))

	query := `
        INSERT INTO memos (user_id, content, created_at)
        VALUES ($1, $2, $3)
        RETURNING id::text, content, created_at
    `

	var created entities.Memo
	err := r.pool.QueryRow(ctx, query, userID, memo.Content, memo.CreatedAt).Scan(
		&created.ID,
		&created.Content,
		&created.CreatedAt,
	)

	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			log.Debug(ctx, "memo owner not found", zap.String("userID", userID))
			return nil, fmt.Errorf("error appending memo: %w", entities.ErrUserNotFound)
		}
		log.Error(ctx, "error appending memo", zap.Error(err))
		return nil, fmt.Errorf("error appending memo: %w", err)
	}

	return &created, nil
}

// Delete удаляет заметку, только если она принадлежит пользователю.
func (r *MemoRepository) Delete(ctx context.Context, userID, memoID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "memo"), zap.String("method", "Delete"))

	query := `
        DELETE FROM memos
        WHERE id = $1 AND user_id = $2
    `

	result, err := r.pool.Exec(ctx, query, memoID, userID)
	if err != nil {
		if pgErrorCode(err) == pgInvalidTextRepresent {
			return entities.ErrMemoNotFound
		}
		log.Error(ctx, "error deleting memo", zap.Error(err))
		return fmt.Errorf("error deleting memo: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "memo not found for deletion", zap.String("memoID", memoID))
		return entities.ErrMemoNotFound
	}

	return nil
}
