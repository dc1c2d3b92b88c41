package app

import (
	"context"
	"fmt"
	"log/slog"

	"sectorgen/internal/shared/config"
	"sectorgen/internal/shared/database"
	"sectorgen/internal/shared/redis"
	"sectorgen/internal/universe"
)

// App holds the connections and services shared by the server and the CLI.
type App struct {
	Config          *config.Config
	DB              *database.DB
	Redis           *redis.Client
	UniverseService *universe.Service
	Logger          *slog.Logger
}

// Open connects to Postgres and Redis, applies migrations and wires the
// universe service. config.GlobalConfig must already be initialized.
func Open(ctx context.Context) (*App, error) {
	cfg := config.GlobalConfig
	logger := slog.Default()

	db, err := database.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.RunMigrations(ctx, cfg.Database.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := redis.Connect()
	if err != nil {
		logger.Warn("Continuing without graph cache", "component", "app", "error", err)
		redisClient = nil
	}

	repo := universe.NewRepository(db, logger)
	cache := universe.NewRedisCache(redisClient, cfg.Redis.KeyPrefix, logger)
	service := universe.NewService(repo, cache, cfg.Universe, cfg.Params(), logger)

	return &App{
		Config:          cfg,
		DB:              db,
		Redis:           redisClient,
		UniverseService: service,
		Logger:          logger,
	}, nil
}

func (a *App) Close() {
	if err := a.Redis.Close(); err != nil {
		a.Logger.Error("Failed to close Redis connection", "error", err)
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", "error", err)
	}
}
