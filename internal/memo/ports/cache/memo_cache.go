// Package cache описывает порт кэша списков заметок.
package cache

import (
	"context"
	"errors"

	"gomemo/internal/memo/domain/entities"
)

// Ошибки кэша.
var (
	// ErrCacheMiss - в кэше нет списка для пользователя.
	ErrCacheMiss = errors.New("memo list not cached")
	// ErrVersionChanged - список изменился после чтения версии, запись пропущена.
	ErrVersionChanged = errors.New("memo list version changed")
)

// MemoCache кэширует списки заметок по ID пользователя. Каждое изменение списка
// увеличивает его версию, и Set сохраняет только список, прочитанный при текущей версии.
type MemoCache interface {
	Get(ctx context.Context, userID string) ([]entities.Memo, error)

	// Version возвращает версию списка. Ее нужно прочитать до чтения списка из хранилища.
	Version(ctx context.Context, userID string) (int64, error)

	// Set сохраняет список или возвращает ErrVersionChanged, если версия уже не равна version.
	Set(ctx context.Context, userID string, version int64, memos []entities.Memo) error

	// Invalidate увеличивает версию и удаляет закэшированный список.
	Invalidate(ctx context.Context, userID string) error

	Close() error
}
