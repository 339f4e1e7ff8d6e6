package bootstrap

import (
	"context"
	"log/slog"

	"telemed-booking/internal/infra/cache"
	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCache,
		func(c *cache.RedisCache) shared.Cache { return c },
	),
)

// NewCache does not fail startup when Redis is down; every cache path degrades to the database.
func NewCache(lc fx.Lifecycle, cfg config.Config) *cache.RedisCache {
	client := cache.NewRedisClient(cfg.Redis)
	c := cache.NewRedisCache(client)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := c.Ping(ctx); err != nil {
				slog.Warn("redis unreachable at startup, continuing without cache", slog.String("addr", cfg.Redis.Addr), slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return c
}
