package storefront

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LogEntry is one audit record of a sync attempt. Every webhook delivery and
// every backfill iteration produces exactly one terminal entry.
type LogEntry struct {
	// ID is the unique identifier of the entry.
	ID uuid.UUID
	// RequestID correlates the entry with the webhook delivery or backfill
	// iteration that triggered it.
	RequestID string
	// Method names the operation that was attempted, e.g. "orders/create".
	Method string
	// Status is the outcome.
	Status LogStatus
	// Message is a human-readable summary, set for Invalid outcomes.
	Message string
	// Exception carries the error text for Error outcomes.
	Exception string
	// Rollback records whether partial writes were undone.
	Rollback bool
	// RequestData is the raw payload JSON, kept for replay and audit.
	RequestData string
	// CreatedAt is when the entry was written.
	CreatedAt time.Time
}

// SyncLogger records sync attempt outcomes. Implementations persist entries
// outside the intake transaction so an Error entry survives the rollback it
// reports.
type SyncLogger interface {
	// Log persists a new entry. The entry's ID and CreatedAt are assigned
	// by the implementation when zero.
	Log(ctx context.Context, entry LogEntry) error
}

// NewLogEntry builds an entry with the given outcome.
func NewLogEntry(requestID, method string, status LogStatus) LogEntry {
	return LogEntry{
		ID:        uuid.New(),
		RequestID: requestID,
		Method:    method,
		Status:    status,
		CreatedAt: time.Now(),
	}
}
