package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gomemo/internal/memo/domain/entities"
	"gomemo/internal/memo/ports/cache"
	"gomemo/internal/memo/ports/repositories"
	"gomemo/pkg/logger"
	"gomemo/pkg/metrics"
)

const (
	msgCacheReadFailed       = "memo cache read failed, falling back to store"
	msgCacheVersionFailed    = "memo cache version read failed, list not cached"
	msgCacheWriteFailed      = "memo cache write failed"
	msgCacheInvalidateFailed = "memo cache invalidation failed"

	errCtxListingMemos = "listing memos"
)

// memoList читает списки заметок. Ошибки кэша не прерывают операцию.
// Кэш заполняет только load, и только списком, прочитанным при неизменной версии.
type memoList struct {
	repo  repositories.MemoRepository
	cache cache.MemoCache
}

// load читает список через кэш.
func (m memoList) load(ctx context.Context, userID string) ([]entities.Memo, error) {
	log := logger.Log(ctx).With(zap.String("userID", userID))

	memos, err := m.cache.Get(ctx, userID)
	if err == nil {
		metrics.RecordCacheLookup(true)
		return memos, nil
	}
	metrics.RecordCacheLookup(false)
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn(ctx, msgCacheReadFailed, zap.Error(err))
	}

	version, versionErr := m.cache.Version(ctx, userID)
	if versionErr != nil {
		log.Warn(ctx, msgCacheVersionFailed, zap.Error(versionErr))
	}

	memos, err = m.fresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	if versionErr == nil {
		err := m.cache.Set(ctx, userID, version, memos)
		if err != nil && !errors.Is(err, cache.ErrVersionChanged) {
			log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
		}
	}

	return memos, nil
}

// fresh читает список из хранилища в обход кэша.
func (m memoList) fresh(ctx context.Context, userID string) ([]entities.Memo, error) {
	memos, err := m.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingMemos, err)
	}
	return memos, nil
}

// invalidate вызывается после изменения списка в хранилище.
func (m memoList) invalidate(ctx context.Context, userID string) {
	if err := m.cache.Invalidate(ctx, userID); err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheInvalidateFailed, zap.String("userID", userID), zap.Error(err))
	}
}
