package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erp/storefront-sync/internal/domain/shared"
)

// deliveryKeyPrefix namespaces dedup keys so the store can share a Redis
// database with other consumers.
const deliveryKeyPrefix = "webhook:delivery:"

// connectTimeout bounds the startup ping so a dead Redis fails fast into
// the in-memory fallback.
const connectTimeout = 5 * time.Second

// RedisIdempotencyStore records seen webhook delivery ids in Redis, letting
// replicas behind a load balancer agree on which deliveries were already
// handled. Each delivery gets its own key, set atomically with SETNX and
// expired after the platform's redelivery window.
type RedisIdempotencyStore struct {
	client *redis.Client
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)

// RedisConfig holds the connection parameters for the dedup store.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisIdempotencyStore connects to Redis and verifies the connection
// before returning the store.
func NewRedisIdempotencyStore(cfg RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: connect redis: %w", err)
	}

	return &RedisIdempotencyStore{client: client}, nil
}

// MarkProcessed records the delivery id with the given TTL, reporting
// whether this call was the first to see it.
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	fresh, err := s.client.SetNX(ctx, deliveryKeyPrefix+deliveryID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("cache: mark delivery %s: %w", deliveryID, err)
	}
	return fresh, nil
}

// IsProcessed reports whether the delivery id was already recorded.
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, deliveryID string) (bool, error) {
	seen, err := s.client.Exists(ctx, deliveryKeyPrefix+deliveryID).Result()
	if err != nil {
		return false, fmt.Errorf("cache: check delivery %s: %w", deliveryID, err)
	}
	return seen > 0, nil
}

// Close releases the Redis client.
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}
