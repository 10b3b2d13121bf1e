package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesInvoice is the invoice created when a synced order is paid. Only the
// fields the sync pipeline reads and writes are modeled; invoice posting
// itself belongs to the ERP.
type SalesInvoice struct {
	ID uuid.UUID
	// ExternalOrderID cross-references the storefront order.
	ExternalOrderID string
	// ExternalStatus mirrors the storefront financial status.
	ExternalStatus string
	// SalesOrderID links back to the originating sales order.
	SalesOrderID uuid.UUID
	// Customer and Company are copied from the sales order.
	Customer string
	Company  string
	// PostingDate is the invoice posting date.
	PostingDate time.Time
	// GrandTotal is the invoiced amount.
	GrandTotal decimal.Decimal
	// Status is the document lifecycle state.
	Status    DocStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSalesInvoice builds a draft invoice for a sales order.
func NewSalesInvoice(so *SalesOrder, postingDate time.Time) *SalesInvoice {
	now := time.Now()
	return &SalesInvoice{
		ID:              uuid.New(),
		ExternalOrderID: so.ExternalOrderID,
		SalesOrderID:    so.ID,
		Customer:        so.Customer,
		Company:         so.Company,
		PostingDate:     postingDate,
		GrandTotal:      so.GrandTotal(),
		Status:          DocStatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Submit finalizes the invoice.
func (si *SalesInvoice) Submit() error {
	if si.Status != DocStatusDraft {
		return ErrNotDraft
	}
	si.Status = DocStatusSubmitted
	si.UpdatedAt = time.Now()
	return nil
}

// DeliveryNote records a fulfillment against a synced order.
type DeliveryNote struct {
	ID uuid.UUID
	// ExternalOrderID cross-references the storefront order.
	ExternalOrderID string
	// ExternalFulfillmentID is the platform fulfillment id this note
	// corresponds to.
	ExternalFulfillmentID string
	// ExternalStatus mirrors the storefront financial status.
	ExternalStatus string
	// SalesOrderID links back to the originating sales order.
	SalesOrderID uuid.UUID
	Customer     string
	Company      string
	// PostingDate is the delivery posting date.
	PostingDate time.Time
	Status      DocStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewDeliveryNote builds a draft delivery note for a fulfillment.
func NewDeliveryNote(so *SalesOrder, fulfillmentID string, postingDate time.Time) *DeliveryNote {
	now := time.Now()
	return &DeliveryNote{
		ID:                    uuid.New(),
		ExternalOrderID:       so.ExternalOrderID,
		ExternalFulfillmentID: fulfillmentID,
		SalesOrderID:          so.ID,
		Customer:              so.Customer,
		Company:               so.Company,
		PostingDate:           postingDate,
		Status:                DocStatusDraft,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Submit finalizes the delivery note.
func (dn *DeliveryNote) Submit() error {
	if dn.Status != DocStatusDraft {
		return ErrNotDraft
	}
	dn.Status = DocStatusSubmitted
	dn.UpdatedAt = time.Now()
	return nil
}

// GrandTotal sums net line amounts and tax charges of a sales order.
func (so *SalesOrder) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range so.Items {
		total = total.Add(item.Rate.Mul(item.Qty))
	}
	for _, tax := range so.Taxes {
		total = total.Add(tax.TaxAmount)
	}
	return total
}
