// Package config предоставляет загрузку конфигурации из env-файла и переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"gomemo/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"
	msgConfigFileMissing       = "configuration file not found, using environment only"

	errFailedLoadConfiguration = "failed to load configuration"
	errFailedStatConfigFile    = "failed to stat configuration file"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет структуру T. Если файл path существует, значения читаются из него
// и перекрываются переменными окружения, иначе используется только окружение.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var cfg T

	useFile := false
	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			useFile = true
		case errors.Is(err, fs.ErrNotExist):
			log.Debug(ctx, msgConfigFileMissing, zap.String(attrPath, path))
		default:
			log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errFailedStatConfigFile, err)
		}
	}

	var err error
	if useFile {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)

	return &cfg, nil
}
