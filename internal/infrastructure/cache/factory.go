package cache

import (
	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/domain/shared"
	"github.com/erp/storefront-sync/internal/infrastructure/config"
)

// NewIdempotencyStore creates the delivery dedup store for the configured
// environment: Redis when a host is configured, in-memory otherwise. A
// failed Redis connection falls back to in-memory with a warning so a cache
// outage never blocks webhook intake.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if cfg.Host == "" {
		logger.Info("no redis configured, using in-memory delivery dedup store")
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory delivery dedup store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore()
	}

	logger.Info("using redis delivery dedup store", zap.String("addr", cfg.Addr()))
	return store
}
