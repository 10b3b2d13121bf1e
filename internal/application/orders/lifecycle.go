package orders

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/domain/document"
	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/logger"
)

// LifecycleService reconciles downstream documents with storefront-side
// status changes, most notably cancellation.
type LifecycleService struct {
	orders   document.SalesOrderRepository
	invoices document.SalesInvoiceRepository
	notes    document.DeliveryNoteRepository
	syncLog  storefront.SyncLogger
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(
	orders document.SalesOrderRepository,
	invoices document.SalesInvoiceRepository,
	notes document.DeliveryNoteRepository,
	syncLog storefront.SyncLogger,
) *LifecycleService {
	return &LifecycleService{
		orders:   orders,
		invoices: invoices,
		notes:    notes,
		syncLog:  syncLog,
	}
}

// CancelOrder handles the storefront's order-cancelled event.
//
// The external financial status is always stamped onto any invoice and
// delivery notes found for the order. The sales order itself is cancelled
// only when no downstream document exists and the order is submitted;
// otherwise it is merely status-stamped, since the ERP cannot cancel an
// order that already fans out into invoices or delivery notes.
func (s *LifecycleService) CancelOrder(ctx context.Context, order *storefront.Order, requestID string) {
	ctx, log := logger.WithRequestID(ctx, logger.FromContext(ctx), requestID)

	externalID := order.ExternalID()
	externalStatus := order.FinancialStatus.String()

	so, err := s.orders.FindByExternalID(ctx, externalID)
	if errors.Is(err, document.ErrSalesOrderNotFound) {
		log.Info("cancellation for unknown order",
			zap.String("external_order_id", externalID),
		)
		s.logOutcome(ctx, requestID, storefront.LogEntry{
			Status:  storefront.LogStatusInvalid,
			Message: "Sales Order does not exist",
		})
		return
	}
	if err != nil {
		s.logOutcome(ctx, requestID, storefront.LogEntry{
			Status:    storefront.LogStatusError,
			Exception: err.Error(),
		})
		return
	}

	if err := s.reconcile(ctx, so, externalID, externalStatus); err != nil {
		log.Error("order cancellation failed",
			zap.String("external_order_id", externalID),
			zap.Error(err),
		)
		s.logOutcome(ctx, requestID, storefront.LogEntry{
			Status:    storefront.LogStatusError,
			Exception: err.Error(),
		})
		return
	}

	s.logOutcome(ctx, requestID, storefront.LogEntry{Status: storefront.LogStatusSuccess})
}

// reconcile stamps the external status on downstream documents and decides
// whether the sales order can be cancelled outright.
func (s *LifecycleService) reconcile(ctx context.Context, so *document.SalesOrder, externalID, externalStatus string) error {
	invoice, err := s.invoices.FindByExternalID(ctx, externalID)
	if err != nil && !errors.Is(err, document.ErrInvoiceNotFound) {
		return err
	}
	hasInvoice := err == nil

	notes, err := s.notes.ListByExternalID(ctx, externalID)
	if err != nil {
		return err
	}

	if hasInvoice {
		invoice.ExternalStatus = externalStatus
		if err := s.invoices.Save(ctx, invoice); err != nil {
			return err
		}
	}
	for i := range notes {
		notes[i].ExternalStatus = externalStatus
		if err := s.notes.Save(ctx, &notes[i]); err != nil {
			return err
		}
	}

	if !hasInvoice && len(notes) == 0 && so.IsSubmitted() {
		if err := so.Cancel(); err != nil {
			return err
		}
		logger.L(ctx).Info("sales order cancelled",
			zap.String("external_order_id", externalID),
		)
	} else {
		so.StampExternalStatus(externalStatus)
	}
	return s.orders.Save(ctx, so)
}

func (s *LifecycleService) logOutcome(ctx context.Context, requestID string, entry storefront.LogEntry) {
	full := storefront.NewLogEntry(requestID, MethodOrderCancel, entry.Status)
	full.Message = entry.Message
	full.Exception = entry.Exception

	if err := s.syncLog.Log(ctx, full); err != nil {
		logger.L(ctx).Error("failed to write sync log entry",
			zap.String("method", MethodOrderCancel),
			zap.Error(err),
		)
	}
}
