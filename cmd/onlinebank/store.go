package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/onlinebank/internal/adapter/http/handler"
	postgresRepo "github.com/iho/onlinebank/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/onlinebank/internal/adapter/repository/redis"
	"github.com/iho/onlinebank/internal/adapter/repository/textfile"
	"github.com/iho/onlinebank/internal/infrastructure/config"
	"github.com/iho/onlinebank/internal/infrastructure/postgres"
	"github.com/iho/onlinebank/internal/infrastructure/redis"
	"github.com/iho/onlinebank/internal/usecase"
)

// storeHandle is an opened AccountStore plus what it takes to probe and
// release its backend.
type storeHandle struct {
	store  usecase.AccountStore
	checks map[string]handler.CheckFunc
	close  func()
}

// Close releases the backend connection, if any.
func (h *storeHandle) Close() {
	if h.close != nil {
		h.close()
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storeHandle, error) {
	switch cfg.StorageDriver {
	case config.DriverRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.DatabaseTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info().Str("key", cfg.RedisKey).Msg("connected to redis")

		return &storeHandle{
			store: redisRepo.NewStore(client, cfg.RedisKey),
			checks: map[string]handler.CheckFunc{
				"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
			},
			close: func() { _ = client.Close() },
		}, nil

	case config.DriverPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}

		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		logger.Info().Msg("connected to postgres")

		return &storeHandle{
			store: postgresRepo.NewStore(pool, postgresRepo.NewRetrier(logger)),
			checks: map[string]handler.CheckFunc{
				"postgres": pool.Ping,
			},
			close: pool.Close,
		}, nil

	default:
		logger.Debug().Str("path", cfg.AccountsFile).Msg("using account file")
		return &storeHandle{store: textfile.NewStore(cfg.AccountsFile)}, nil
	}
}
