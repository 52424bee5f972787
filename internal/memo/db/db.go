// Package db управляет подключением сервиса заметок к PostgreSQL.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gomemo/internal/memo/config"
	"gomemo/pkg/db/postgres"
	"gomemo/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing memo database"
	LogDBInitialized     = "memo database initialized successfully"
	LogDBUnavailable     = "memo database unavailable, continuing with lazy connection"
	LogMigrationStarting = "starting database migrations for memo service"
	LogMigrationFailed   = "memo database migrations failed"
	LogSchemaReady       = "memo database schema is up to date"
)

// Константы для сообщений об ошибках.
const (
	ErrDBInit       = "failed to initialize memo database"
	ErrDBMigrations = "failed to apply memo database migrations"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных сервиса заметок.
type DB struct {
	database *postgres.Database
}

// New создает пул соединений, применяет миграции и проверяет соединение.
// Недоступность базы не считается ошибкой: она логируется, а пул подключится
// при первом запросе. Ошибку возвращает только некорректная конфигурация.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	database, err := postgres.Open(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBInit, err)
	}

	db := &DB{database: database}

	if err := db.Migrate(ctx, cfg, migrationsDir); err != nil {
		log.Error(ctx, LogMigrationFailed, zap.Error(err))
	}

	if err := database.Ping(ctx); err != nil {
		log.Error(ctx, LogDBUnavailable, zap.Error(err))
		return db, nil
	}

	log.Info(ctx, LogDBInitialized)
	return db, nil
}

// Migrate применяет миграции из каталога migrationsDir.
func (db *DB) Migrate(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) error {
	migrationsPath, err := MigrationsURL(migrationsDir)
	if err != nil {
		return err
	}

	logger.Log(ctx).Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	state, err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	logger.Log(ctx).Info(ctx, LogSchemaReady, zap.Uint("schema_version", state.Version))
	return nil
}

// MigrationsURL переводит путь к каталогу миграций в URL источника file://.
func MigrationsURL(migrationsDir string) (string, error) {
	if filepath.IsAbs(migrationsDir) {
		return "file://" + migrationsDir, nil
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
	}
	return "file://" + absPath, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет доступность базы данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
