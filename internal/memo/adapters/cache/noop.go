package cache

import (
	"context"

	"gomemo/internal/memo/domain/entities"
	"gomemo/internal/memo/ports/cache"
)

// NoopMemoCache используется, когда Redis отключен или недоступен.
type NoopMemoCache struct{}

// NewNoopMemoCache создает пустой кэш.
func NewNoopMemoCache() cache.MemoCache {
	return NoopMemoCache{}
}

// Get всегда возвращает промах.
func (NoopMemoCache) Get(context.Context, string) ([]entities.Memo, error) {
	return nil, cache.ErrCacheMiss
}

// Version всегда возвращает ноль.
func (NoopMemoCache) Version(context.Context, string) (int64, error) { return 0, nil }

// Set ничего не делает.
func (NoopMemoCache) Set(context.Context, string, int64, []entities.Memo) error { return nil }

// Invalidate ничего не делает.
func (NoopMemoCache) Invalidate(context.Context, string) error { return nil }

// Close ничего не делает.
func (NoopMemoCache) Close() error { return nil }
