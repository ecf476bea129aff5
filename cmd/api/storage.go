package main

import (
	"context"
	"fmt"
	"log"

	"rocketshoes/internal/config"
	"rocketshoes/internal/db"
	"rocketshoes/internal/migrate"
	"rocketshoes/internal/repository/storage"
)

// openStorage builds the slot repository selected by STORAGE_BACKEND. The
// returned func releases its connections.
func openStorage(ctx context.Context, cfg config.Config, logger *log.Logger) (storage.Repository, func(), error) {
	switch cfg.StorageBackend {
	case "", "file":
		repo, err := storage.NewFile(cfg.StorageDir, logger)
		return repo, func() {}, err
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to db: %w", err)
		}
		if cfg.AutoMigrate {
			if err := migrate.Apply(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("apply migrations: %w", err)
			}
			logger.Println("migrations applied")
		}
		return storage.NewPostgres(pool, logger), pool.Close, nil
	case "redis":
		repo, client := storage.NewRedis(cfg.RedisURL, logger)
		if err := repo.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return repo, func() { client.Close() }, nil
	case "sqlite":
		repo, sqlDB, err := storage.OpenSQLite(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { sqlDB.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
