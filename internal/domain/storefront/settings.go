package storefront

import (
	"context"
	"time"
)

// Settings is the integration configuration resolved per sync invocation.
// It is persisted as a singleton row so the backfill flag can be cleared
// after a completed run.
type Settings struct {
	// SalesOrderSeries is the naming series applied to created sales orders.
	SalesOrderSeries string
	// DefaultCustomer is used when the payload's customer cannot be resolved.
	DefaultCustomer string
	// Company is the company the documents are created under.
	Company string
	// PriceList is the selling price list stamped on sales orders.
	PriceList string
	// Warehouse is the source warehouse for every mapped item.
	Warehouse string
	// CostCenter is stamped on every tax charge.
	CostCenter string
	// SyncOldOrders gates the historical backfill.
	SyncOldOrders bool
	// OldOrdersFrom and OldOrdersTo bound the backfill date range.
	OldOrdersFrom time.Time
	OldOrdersTo   time.Time
}

// SettingsRepository provides access to the integration settings.
type SettingsRepository interface {
	// Get returns the current settings.
	Get(ctx context.Context) (*Settings, error)
	// Save persists the settings.
	Save(ctx context.Context, settings *Settings) error
}
