package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// DocStatus
// ---------------------------------------------------------------------------

// DocStatus is the lifecycle state of a sales document.
type DocStatus string

const (
	// DocStatusDraft indicates the document is saved but not finalized.
	DocStatusDraft DocStatus = "DRAFT"
	// DocStatusSubmitted indicates the document is finalized and posting.
	DocStatusSubmitted DocStatus = "SUBMITTED"
	// DocStatusCancelled indicates the document was cancelled.
	DocStatusCancelled DocStatus = "CANCELLED"
)

// IsValid returns true if the status is valid.
func (s DocStatus) IsValid() bool {
	switch s {
	case DocStatusDraft, DocStatusSubmitted, DocStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of DocStatus.
func (s DocStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// SalesOrder
// ---------------------------------------------------------------------------

// SalesOrder is the ERP sales order created from a storefront order. The
// external order id is the cross-reference and idempotency key: at most one
// sales order exists per external order.
type SalesOrder struct {
	// ID is the internal document identifier.
	ID uuid.UUID
	// NamingSeries is the configured series prefix for synced orders.
	NamingSeries string
	// ExternalOrderID is the storefront order id.
	ExternalOrderID string
	// ExternalOrderNumber is the storefront display number.
	ExternalOrderNumber string
	// ExternalStatus mirrors the storefront financial status. Lifecycle
	// sync stamps it when cancellation is blocked by downstream documents.
	ExternalStatus string
	// Customer is the ERP customer name.
	Customer string
	// Company the order is booked under.
	Company string
	// TransactionDate and DeliveryDate are both the payload creation date.
	TransactionDate time.Time
	DeliveryDate    time.Time
	// SellingPriceList is stamped from settings.
	SellingPriceList string
	// IgnorePricingRule disables automatic pricing-rule recomputation so
	// the storefront's prices survive submission.
	IgnorePricingRule bool
	// TaxCategory is a placeholder category that keeps the ERP's tax
	// templates from recomputing the imported charges.
	TaxCategory string
	// Items are the mapped line items.
	Items []OrderItem
	// Taxes are the mapped tax charges, shipping included.
	Taxes []TaxCharge
	// Comment is attached after creation when the payload carries a note.
	Comment string
	// Status is the document lifecycle state.
	Status DocStatus
	// CreatedAt is when the document was created locally.
	CreatedAt time.Time
	// UpdatedAt is when the document was last written.
	UpdatedAt time.Time
}

// NewSalesOrder builds a draft sales order.
func NewSalesOrder(externalOrderID string) *SalesOrder {
	now := time.Now()
	return &SalesOrder{
		ID:              uuid.New(),
		ExternalOrderID: externalOrderID,
		Status:          DocStatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Submit finalizes the document.
func (so *SalesOrder) Submit() error {
	if so.Status != DocStatusDraft {
		return ErrNotDraft
	}
	so.Status = DocStatusSubmitted
	so.UpdatedAt = time.Now()
	return nil
}

// Cancel cancels a submitted document. Cancellation is only legal before
// downstream documents exist; the lifecycle service enforces that.
func (so *SalesOrder) Cancel() error {
	if so.Status != DocStatusSubmitted {
		return ErrNotSubmitted
	}
	so.Status = DocStatusCancelled
	so.UpdatedAt = time.Now()
	return nil
}

// IsSubmitted returns true when the document is finalized.
func (so *SalesOrder) IsSubmitted() bool {
	return so.Status == DocStatusSubmitted
}

// StampExternalStatus records the storefront financial status on the order.
func (so *SalesOrder) StampExternalStatus(status string) {
	so.ExternalStatus = status
	so.UpdatedAt = time.Now()
}

// OrderItem is one mapped sales order line.
type OrderItem struct {
	// ItemCode is the ERP item code resolved from the catalog mapping.
	ItemCode string
	// ItemName is the storefront display name.
	ItemName string
	// Rate is the net unit price after discount (and tax, when inclusive).
	Rate decimal.Decimal
	// Qty is the ordered quantity.
	Qty decimal.Decimal
	// DeliveryDate matches the order delivery date.
	DeliveryDate time.Time
	// StockUOM defaults to "Nos" when the platform reports none.
	StockUOM string
	// Warehouse is the configured source warehouse.
	Warehouse string
	// DiscountPerUnit is the per-unit average of the line's discount
	// allocations, kept for reporting.
	DiscountPerUnit decimal.Decimal
}

// ChargeTypeActual is the only charge type emitted by the mapper: amounts
// are posted verbatim, never recomputed from rates.
const ChargeTypeActual = "Actual"

// TaxCharge is one mapped tax or shipping charge row.
type TaxCharge struct {
	// ChargeType is always ChargeTypeActual.
	ChargeType string
	// AccountHead is the ledger account resolved from the tax mapping.
	AccountHead string
	// Description combines the mapped description (or tax title) with the
	// rate formatted as a percentage.
	Description string
	// TaxAmount is the charge amount, verbatim from the payload.
	TaxAmount decimal.Decimal
	// CostCenter is stamped from settings.
	CostCenter string
	// IncludedInPrintRate is false: charges are shown separately.
	IncludedInPrintRate bool
	// ItemWiseTaxDetail is a JSON blob {item_code: [rate*100, amount]}
	// kept for audit. Empty for shipping charge rows.
	ItemWiseTaxDetail string
	// DontRecomputeTax keeps the ERP from re-deriving the amount.
	DontRecomputeTax bool
}
