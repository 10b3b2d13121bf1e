package storefront

import "errors"

var (
	// ErrOrderAlreadySynced indicates a sales order already exists for the
	// external order id. Intake treats this as a skip, not a failure.
	ErrOrderAlreadySynced = errors.New("storefront: order already synced")

	// ErrOrderNotFound indicates no sales order exists for the external
	// order id. Cancellation treats this as a no-op.
	ErrOrderNotFound = errors.New("storefront: order does not exist")

	// ErrItemNotResolved indicates a line item's backing product is not
	// known to the ERP catalog. Item mapping is all-or-nothing, so one
	// unresolved item aborts the whole order.
	ErrItemNotResolved = errors.New("storefront: line item product not resolved")

	// ErrTaxAccountNotMapped indicates no ledger account is configured for
	// an encountered tax title. Tax accounting cannot proceed without it,
	// so this is raised to the caller.
	ErrTaxAccountNotMapped = errors.New("storefront: tax account not mapped for tax title")

	// ErrSyncDisabled indicates the old-order backfill flag is not set.
	ErrSyncDisabled = errors.New("storefront: old order sync disabled in settings")

	// ErrInvalidPayload indicates the inbound payload failed boundary
	// validation before mapping.
	ErrInvalidPayload = errors.New("storefront: invalid order payload")
)
