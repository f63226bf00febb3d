package bootstrap

import (
	"context"
	"log/slog"

	"playa-admin/internal/infra/cache"
	"playa-admin/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		func(client *redis.Client, cfg config.Config, logger *slog.Logger) *cache.ReportCache {
			return cache.NewReportCache(client, cfg.Redis, logger)
		},
	),
)

// NewRedis may provide a nil client; the report cache degrades to
// uncached reads in that case.
func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	client := cache.NewRedisClient(cfg.Redis, logger)
	if client == nil {
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}
