// Package setup wires the application's shared infrastructure together.
package setup

import (
	"context"
	"fmt"

	"github.com/leandro-lugaresi/hub"
	"github.com/mindhaven/sentinel/internal/database"
	"github.com/mindhaven/sentinel/internal/redis"
	"github.com/mindhaven/sentinel/internal/setup/config"
	"github.com/mindhaven/sentinel/internal/setup/logger"
	"go.uber.org/zap"
)

// App bundles the shared dependencies the commands build their components from.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	EventHub     *hub.Hub
	RedisManager *redis.Manager
	DB           database.Client
}

// InitializeApp loads configuration and brings up logging, the event hub,
// Redis and the database, in that order.
func InitializeApp(ctx context.Context) (*App, error) {
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Loaded configuration", zap.String("configDir", configDir))

	eventHub := hub.New()
	redisManager := redis.NewManager(&cfg.Redis, log)

	db, err := database.NewConnection(ctx, cfg, eventHub, log, true)
	if err != nil {
		redisManager.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       log,
		EventHub:     eventHub,
		RedisManager: redisManager,
		DB:           db,
	}, nil
}

// Cleanup releases the application's resources in reverse initialization
// order. Errors are logged rather than returned since shutdown continues
// regardless.
func (a *App) Cleanup() {
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}

	a.RedisManager.Close()

	// Flushing buffered log entries can legitimately fail on stderr.
	_ = a.Logger.Sync()
}
