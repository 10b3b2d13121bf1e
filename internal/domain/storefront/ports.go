package storefront

import (
	"context"
	"time"
)

// ---------------------------------------------------------------------------
// Ports & Adapters: lookups and side effects the mapping pipeline depends on.
// Concrete implementations live in the infrastructure layer so the tax and
// discount math stays pure and independently testable.
// ---------------------------------------------------------------------------

// TaxAccount is the ledger mapping for one storefront tax title.
type TaxAccount struct {
	// AccountHead is the internal ledger account the tax amount posts to.
	AccountHead string
	// Description overrides the tax title in charge descriptions when set.
	Description string
}

// TaxAccountResolver maps storefront tax titles to ledger accounts.
type TaxAccountResolver interface {
	// Resolve returns the account mapped to the tax title. It returns
	// ErrTaxAccountNotMapped when no mapping is configured; callers must
	// treat that as a hard failure.
	Resolve(ctx context.Context, taxTitle string) (TaxAccount, error)
}

// ItemCatalog resolves storefront line items against the ERP item master.
type ItemCatalog interface {
	// EnsureItems resolves product existence for every line item of the
	// order, setting LineItem.ProductExists on each. Implementations may
	// create missing catalog mappings where the platform payload carries
	// enough product data.
	EnsureItems(ctx context.Context, order *Order) error

	// ItemCode returns the ERP item code mapped to the line item. It
	// returns ErrItemNotResolved when no mapping exists.
	ItemCode(ctx context.Context, item *LineItem) (string, error)
}

// CustomerSync creates or refreshes the ERP customer backing an order.
type CustomerSync interface {
	// SyncCustomer creates the customer when absent, or updates the stored
	// addresses when it already exists.
	SyncCustomer(ctx context.Context, customer *Customer, billing, shipping *Address) error

	// CustomerName returns the ERP customer name for an external customer
	// id, or empty when the customer is unknown.
	CustomerName(ctx context.Context, externalCustomerID int64) (string, error)
}

// OrderPager is a lazy, finite, forward-only sequence of order pages from
// the storefront API. It is not restartable: a new fetch restarts from the
// range start.
type OrderPager interface {
	// NextPage returns the next page of orders. The second return value is
	// false when the sequence is exhausted.
	NextPage(ctx context.Context) ([]Order, bool, error)
}

// OrderSource fetches historical orders from the storefront platform.
type OrderSource interface {
	// FetchOrders returns a pager over orders created within the range.
	// Pages are fetched on demand to stay under platform rate limits.
	FetchOrders(ctx context.Context, from, to time.Time) (OrderPager, error)
}
