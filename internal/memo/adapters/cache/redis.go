// Package cache содержит кэш списков заметок на Redis и пустую реализацию для работы без него.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gomemo/internal/memo/domain/entities"
	"gomemo/internal/memo/ports/cache"
	"gomemo/pkg/db/redis"
	"gomemo/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet        = "get"
	LogMethodVersion    = "version"
	LogMethodSet        = "set"
	LogMethodInvalidate = "invalidate"

	ErrorFailedToGet        = "failed to get memo list from redis"
	ErrorFailedToVersion    = "failed to read memo list version from redis"
	ErrorFailedToSet        = "failed to set memo list in redis"
	ErrorFailedToInvalidate = "failed to invalidate memo list in redis"
	ErrorFailedToDecode     = "failed to decode cached memo list"
	ErrorFailedToEncode     = "failed to encode memo list"
	ErrorFailedToClose      = "failed to close redis connection"

	LogStaleList = "memo list changed while loading, not cached"

	keyPrefix     = "memos:"
	versionSuffix = ":version"
)

type cachedMemo struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisMemoCache хранит сериализованные списки заметок под ключом memos:<userID>
// и их версии под ключом memos:<userID>:version.
type RedisMemoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMemoCache создает кэш поверх подключенного клиента.
func NewRedisMemoCache(client *redis.Client, ttl time.Duration) cache.MemoCache {
	return &RedisMemoCache{client: client, ttl: ttl}
}

// Key возвращает ключ Redis для списка заметок пользователя.
func Key(userID string) string {
	return keyPrefix + userID
}

// VersionKey возвращает ключ Redis для версии списка заметок пользователя.
func VersionKey(userID string) string {
	return keyPrefix + userID + versionSuffix
}

// Get возвращает закэшированный список или cache.ErrCacheMiss.
func (c *RedisMemoCache) Get(ctx context.Context, userID string) ([]entities.Memo, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("userID", userID))

	raw, err := c.client.Get(ctx, Key(userID))
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return nil, cache.ErrCacheMiss
		}
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var stored []cachedMemo
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	memos := make([]entities.Memo, 0, len(stored))
	for _, m := range stored {
		memos = append(memos, entities.Memo{ID: m.ID, Content: m.Content, CreatedAt: m.CreatedAt})
	}

	return memos, nil
}

// Version возвращает версию списка. Отсутствующая версия равна нулю.
func (c *RedisMemoCache) Version(ctx context.Context, userID string) (int64, error) {
	raw, err := c.client.Get(ctx, VersionKey(userID))
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return 0, nil
		}
		logger.Log(ctx).Warn(ctx, ErrorFailedToVersion,
			zap.String("method", LogMethodVersion), zap.String("userID", userID), zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrorFailedToVersion, err)
	}

	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrorFailedToVersion, err)
	}
	return version, nil
}

// Set сохраняет список заметок пользователя, если его версия все еще равна version.
func (c *RedisMemoCache) Set(ctx context.Context, userID string, version int64, memos []entities.Memo) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("userID", userID))

	stored := make([]cachedMemo, 0, len(memos))
	for _, m := range memos {
		stored = append(stored, cachedMemo{ID: m.ID, Content: m.Content, CreatedAt: m.CreatedAt})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	written, err := c.client.CompareAndSet(ctx, Key(userID), VersionKey(userID), strconv.FormatInt(version, 10), data, c.ttl)
	if err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	if !written {
		log.Debug(ctx, LogStaleList, zap.Int64("version", version))
		return cache.ErrVersionChanged
	}

	return nil
}

// Invalidate увеличивает версию списка и удаляет его из кэша.
func (c *RedisMemoCache) Invalidate(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodInvalidate), zap.String("userID", userID))

	if err := c.client.IncrementAndDelete(ctx, VersionKey(userID), Key(userID)); err != nil {
		log.Warn(ctx, ErrorFailedToInvalidate, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToInvalidate, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisMemoCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
