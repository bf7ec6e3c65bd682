package server

import (
	"io"
	"log/slog"

	"github.com/preston-bernstein/nba-edge-service/internal/cache"
	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
)

// buildPriorCache returns a Redis-backed cache when REDIS_URL is set, otherwise an in-process one.
// The closer is nil for the in-process cache.
func buildPriorCache(cfg config.Config, logger *slog.Logger) (cache.PriorCache, io.Closer) {
	if cfg.Cache.RedisURL == "" {
		return cache.NewMemoryCache(cfg.Cache.PriorTTL), nil
	}
	redisCache, err := cache.NewRedisCacheFromURL(cfg.Cache.RedisURL, cfg.Cache.PriorTTL)
	if err != nil {
		logging.Warn(logger, "redis cache unavailable, using memory cache", "err", err)
		return cache.NewMemoryCache(cfg.Cache.PriorTTL), nil
	}
	logging.Info(logger, "prior cache using redis")
	return redisCache, redisCache
}
