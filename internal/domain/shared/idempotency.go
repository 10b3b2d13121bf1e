package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores seen webhook delivery IDs to short-circuit
// platform redeliveries before they reach the sync pipeline. It is a fast
// path only: the database existence check on the external order id remains
// the authoritative duplicate guard.
type IdempotencyStore interface {
	// MarkProcessed marks a delivery as processed with a TTL.
	// Returns true if the delivery was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a delivery has already been processed.
	IsProcessed(ctx context.Context, deliveryID string) (bool, error)

	// Close closes the store and releases resources.
	Close() error
}

// IdempotencyConfig holds configuration for webhook delivery deduplication.
type IdempotencyConfig struct {
	// TTL is the time-to-live for seen delivery IDs. Platforms stop
	// redelivering well within a day, so expired entries are safe to drop.
	// Default: 24 hours.
	TTL time.Duration

	// Enabled determines whether delivery deduplication is enabled.
	// Default: true.
	Enabled bool
}

// DefaultIdempotencyConfig returns the default deduplication configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
