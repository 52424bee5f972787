package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres:// для migrate
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник file:// для migrate
	"go.uber.org/zap"

	"gomemo/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrReadSchemaVersion       = "failed to read schema version"

	logCloseMigrator = "failed to close migration instance"
)

// ErrDirtySchema - предыдущая миграция прервана, схема требует ручного исправления.
var ErrDirtySchema = errors.New("database schema is dirty")

// SchemaVersion - состояние схемы после применения миграций.
type SchemaVersion struct {
	Version uint
	Changed bool
}

// MigrateDSN применяет миграции из sourceURL (file://...) к базе dsn и возвращает версию схемы.
// Нулевая версия означает, что в источнике нет ни одной миграции.
func MigrateDSN(ctx context.Context, dsn string, sourceURL string) (SchemaVersion, error) {
	log := logger.Log(ctx).With(zap.String("source", sourceURL))

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return SchemaVersion{}, fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, logCloseMigrator, zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	upErr := m.Up()

	var dirty migrate.ErrDirty
	if errors.As(upErr, &dirty) {
		log.Error(ctx, ErrApplyMigrations, zap.Int("dirty_version", dirty.Version))
		return SchemaVersion{Version: uint(dirty.Version)}, fmt.Errorf("%s: %w: version %d", ErrApplyMigrations, ErrDirtySchema, dirty.Version)
	}
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(upErr))
		return SchemaVersion{}, fmt.Errorf("%s: %w", ErrApplyMigrations, upErr)
	}

	state := SchemaVersion{Changed: upErr == nil}

	version, _, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		// источник пуст
	case err != nil:
		return state, fmt.Errorf("%s: %w", ErrReadSchemaVersion, err)
	default:
		state.Version = version
	}

	log.Info(ctx, LogMigrationsApplied, zap.Uint("version", state.Version), zap.Bool("changed", state.Changed))
	return state, nil
}
