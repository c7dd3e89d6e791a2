package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/repository"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/cache"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/config"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/database"
)

// storageBackend bundles the selected key-value store with its health check and teardown.
type storageBackend struct {
	store repository.KeyValueStore
	ping  func(ctx context.Context) error
	close func()
}

func openStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*storageBackend, error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		store := repository.NewRedisStore(client, logr)
		return &storageBackend{
			store: store,
			ping:  func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close: func() {
				if err := store.Close(); err != nil {
					logr.Warn("failed to close redis client", zap.Error(err))
				}
			},
		}, nil
	case config.StoragePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		store := repository.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &storageBackend{
			store: store,
			ping:  db.PingContext,
			close: func() {
				if err := db.Close(); err != nil {
					logr.Warn("failed to close database", zap.Error(err))
				}
			},
		}, nil
	case config.StorageMemory:
		logr.Warn("using in-memory storage; data is lost on restart")
		return &storageBackend{store: repository.NewMemoryStore(), close: func() {}}, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
