package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	adaptercache "gomemo/internal/memo/adapters/cache"
	httpServer "gomemo/internal/memo/adapters/http"
	"gomemo/internal/memo/adapters/postgres"
	"gomemo/internal/memo/adapters/services"
	"gomemo/internal/memo/app"
	"gomemo/internal/memo/config"
	"gomemo/internal/memo/db"
	"gomemo/internal/memo/ports/cache"
	"gomemo/pkg/db/redis"
	"gomemo/pkg/logger"
	"gomemo/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "MEMO_LOGGER_MODE"
	EnvLoggerLevel = "MEMO_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client, memo cache disabled"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "memo service started"
	LogServiceShutdownDone = "memo service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing memo cache"
	LogCacheDisabled       = "memo cache disabled"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingCache        = "closing memo cache"
	LogClosingDatabase     = "closing database connections"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger
		ctx = logger.NewContext(ctx, log)

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres, cfg.Migrations.Dir)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		memoCache := newMemoCache(ctx, log, &cfg.Redis)

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())

		accountUseCase := app.NewAccountUseCase(
			repoFactory.UserRepository(),
			repoFactory.MemoRepository(),
			memoCache,
			serviceFactory.PasswordService(),
			serviceFactory.TokenService(),
		)
		memoUseCase := app.NewMemoUseCase(
			repoFactory.UserRepository(),
			repoFactory.MemoRepository(),
			memoCache,
		)

		log.Info(ctx, LogInitHTTPServer)
		server := httpServer.NewApp(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		}, httpServer.Dependencies{
			Accounts: accountUseCase,
			Memos:    memoUseCase,
			Tokens:   serviceFactory.TokenService(),
			Store:    database,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.ShutdownWithContext(ctx)
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingCache)
				return memoCache.Close()
			},
			// Закрытие пула соединений с базой.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// newMemoCache подключает Redis, если кэш включен. Недоступный Redis не мешает
// запуску: сервис работает без кэша.
func newMemoCache(ctx context.Context, log *logger.Logger, cfg *config.RedisConfig) cache.MemoCache {
	if !cfg.Enabled {
		log.Info(ctx, LogCacheDisabled)
		return adaptercache.NewNoopMemoCache()
	}

	clientCfg := cfg.ClientConfig()
	log.Info(ctx, LogInitCache, zap.String("address", clientCfg.Address()))
	client, err := redis.NewClient(ctx, &clientCfg)
	if err != nil {
		log.Warn(ctx, ErrCreateRedisClient, zap.Error(err))
		return adaptercache.NewNoopMemoCache()
	}

	return adaptercache.NewRedisMemoCache(client, cfg.TTL)
}
