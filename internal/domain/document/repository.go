package document

import "context"

// SalesOrderRepository persists sales orders keyed by the external order id.
type SalesOrderRepository interface {
	// FindByExternalID returns the sales order cross-referencing the
	// storefront order id, or ErrSalesOrderNotFound.
	FindByExternalID(ctx context.Context, externalOrderID string) (*SalesOrder, error)

	// ExistsByExternalID reports whether a sales order exists for the
	// storefront order id.
	ExistsByExternalID(ctx context.Context, externalOrderID string) (bool, error)

	// Save creates or updates a sales order with its items and taxes.
	Save(ctx context.Context, order *SalesOrder) error
}

// SalesInvoiceRepository persists sales invoices.
type SalesInvoiceRepository interface {
	// FindByExternalID returns the invoice for the storefront order id, or
	// ErrInvoiceNotFound.
	FindByExternalID(ctx context.Context, externalOrderID string) (*SalesInvoice, error)

	// Save creates or updates an invoice.
	Save(ctx context.Context, invoice *SalesInvoice) error
}

// DeliveryNoteRepository persists delivery notes. An order may have several,
// one per fulfillment.
type DeliveryNoteRepository interface {
	// ListByExternalID returns all delivery notes for the storefront order
	// id. An empty slice is not an error.
	ListByExternalID(ctx context.Context, externalOrderID string) ([]DeliveryNote, error)

	// Save creates or updates a delivery note.
	Save(ctx context.Context, note *DeliveryNote) error
}
