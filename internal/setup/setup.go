// Package setup handles application initialization: configuration, logging,
// database and Redis connections, the connection hub and the notification
// orchestrator.
package setup

import (
	"context"
	"fmt"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/cache"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/events"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/notifier"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/push"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/redis"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App bundles all core dependencies and services needed by the application.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           database.Client
	RedisManager *redis.Manager
	Hub          *events.Hub
	Notifier     *notifier.Notifier
}

// InitializeApp bootstraps all application dependencies in order.
func InitializeApp(ctx context.Context) (*App, error) {
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg.Debug.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Loaded configuration", zap.String("configDir", configDir))

	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, logger, true)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisManager := redis.NewManager(&cfg.Redis, logger)

	cacheClient, err := redisManager.GetClient(redis.CacheDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache client: %w", err)
	}

	hub := events.NewHub(logger)
	counters := cache.NewUnreadCounter(cacheClient, logger)

	n := notifier.New(
		db.Model().Notification(),
		db.Model().User(),
		hub,
		counters,
		newGateway(cfg, logger),
		logger,
	)

	return &App{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		RedisManager: redisManager,
		Hub:          hub,
		Notifier:     n,
	}, nil
}

// Cleanup closes outbound connections. Called during shutdown, after the
// HTTP server has drained.
func (a *App) Cleanup(_ context.Context) {
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}

	a.RedisManager.Close()

	_ = a.Logger.Sync()
}

// newLogger builds the application logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return cfg.Build()
}

// newGateway selects the push gateway implementation. Without a configured
// provider the log gateway stands in so delivery hand-offs stay observable.
func newGateway(cfg *config.Config, logger *zap.Logger) push.Gateway {
	if cfg.Push.Enabled {
		logger.Warn("Push gateway enabled but no provider is configured, hand-offs will only be logged")
	} else {
		logger.Info("Push gateway disabled, using log gateway")
	}

	return push.NewLogGateway(logger)
}
