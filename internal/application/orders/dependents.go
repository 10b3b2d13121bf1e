package orders

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/domain/document"
	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/logger"
)

// DependentDocsService creates the downstream documents a synced order
// fans out into: a sales invoice once the order is paid and one delivery
// note per fulfillment.
type DependentDocsService struct {
	invoices document.SalesInvoiceRepository
	notes    document.DeliveryNoteRepository

	now func() time.Time
}

// NewDependentDocsService creates a new DependentDocsService.
func NewDependentDocsService(invoices document.SalesInvoiceRepository, notes document.DeliveryNoteRepository) *DependentDocsService {
	return &DependentDocsService{
		invoices: invoices,
		notes:    notes,
		now:      time.Now,
	}
}

// CreateForOrder creates whichever dependent documents the payload calls
// for: an invoice when the order is paid, delivery notes when fulfillments
// are present. Both paths are idempotent on the external order id.
func (s *DependentDocsService) CreateForOrder(ctx context.Context, order *storefront.Order, so *document.SalesOrder) error {
	if order.FinancialStatus.RequiresInvoice() {
		if err := s.createInvoice(ctx, order, so); err != nil {
			return err
		}
	}
	if len(order.Fulfillments) > 0 {
		if err := s.createDeliveryNotes(ctx, order, so); err != nil {
			return err
		}
	}
	return nil
}

// createInvoice creates and submits the sales invoice unless one already
// exists for the external order id.
func (s *DependentDocsService) createInvoice(ctx context.Context, order *storefront.Order, so *document.SalesOrder) error {
	_, err := s.invoices.FindByExternalID(ctx, so.ExternalOrderID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, document.ErrInvoiceNotFound) {
		return err
	}

	invoice := document.NewSalesInvoice(so, order.TransactionDate(s.now()))
	invoice.ExternalStatus = order.FinancialStatus.String()
	if err := invoice.Submit(); err != nil {
		return err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return err
	}

	logger.L(ctx).Info("sales invoice created",
		zap.String("external_order_id", so.ExternalOrderID),
		zap.String("sales_invoice_id", invoice.ID.String()),
	)
	return nil
}

// createDeliveryNotes creates one submitted delivery note per fulfillment
// that does not have one yet.
func (s *DependentDocsService) createDeliveryNotes(ctx context.Context, order *storefront.Order, so *document.SalesOrder) error {
	existing, err := s.notes.ListByExternalID(ctx, so.ExternalOrderID)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, note := range existing {
		seen[note.ExternalFulfillmentID] = true
	}

	for _, fulfillment := range order.Fulfillments {
		fulfillmentID := strconv.FormatInt(fulfillment.ID, 10)
		if seen[fulfillmentID] {
			continue
		}

		postingDate := fulfillment.CreatedAt
		if postingDate.IsZero() {
			postingDate = order.TransactionDate(s.now())
		}
		note := document.NewDeliveryNote(so, fulfillmentID, postingDate)
		note.ExternalStatus = order.FinancialStatus.String()
		if err := note.Submit(); err != nil {
			return err
		}
		if err := s.notes.Save(ctx, note); err != nil {
			return err
		}

		logger.L(ctx).Info("delivery note created",
			zap.String("external_order_id", so.ExternalOrderID),
			zap.String("fulfillment_id", fulfillmentID),
		)
	}
	return nil
}
