package orders

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/domain/document"
	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/logger"
)

// Sync methods recorded on log entries.
const (
	MethodOrderCreate   = "orders/create"
	MethodOrderCancel   = "orders/cancelled"
	MethodOrderBackfill = "orders/backfill"
)

// TransactionManager runs a function inside a database transaction. The
// transaction is carried in the returned context; repositories pick it up
// so every write within fn commits or rolls back atomically.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// IntakeService is the entry point for order payloads arriving from webhook
// deliveries or the historical backfill. Every invocation ends in exactly
// one sync log entry; no error propagates to the trigger.
type IntakeService struct {
	tx         TransactionManager
	orders     document.SalesOrderRepository
	settings   storefront.SettingsRepository
	customers  storefront.CustomerSync
	catalog    storefront.ItemCatalog
	mapper     *MapperService
	dependents *DependentDocsService
	syncLog    storefront.SyncLogger
}

// NewIntakeService creates a new IntakeService.
func NewIntakeService(
	tx TransactionManager,
	orders document.SalesOrderRepository,
	settings storefront.SettingsRepository,
	customers storefront.CustomerSync,
	catalog storefront.ItemCatalog,
	mapper *MapperService,
	dependents *DependentDocsService,
	syncLog storefront.SyncLogger,
) *IntakeService {
	return &IntakeService{
		tx:         tx,
		orders:     orders,
		settings:   settings,
		customers:  customers,
		catalog:    catalog,
		mapper:     mapper,
		dependents: dependents,
		syncLog:    syncLog,
	}
}

// SyncOrder processes one storefront order payload end to end: duplicate
// check, customer sync, item resolution, sales order mapping, and dependent
// document creation. All writes happen inside one transaction; any failure
// rolls the transaction back and is recorded as an Error log entry.
func (s *IntakeService) SyncOrder(ctx context.Context, order *storefront.Order, requestID string) {
	ctx, log := logger.WithRequestID(ctx, logger.FromContext(ctx), requestID)

	exists, err := s.orders.ExistsByExternalID(ctx, order.ExternalID())
	if err != nil {
		s.logOutcome(ctx, requestID, MethodOrderCreate, storefront.LogEntry{
			Status:    storefront.LogStatusError,
			Exception: err.Error(),
		})
		return
	}
	if exists {
		log.Info("sales order already exists, not synced",
			zap.String("external_order_id", order.ExternalID()),
		)
		s.logOutcome(ctx, requestID, MethodOrderCreate, storefront.LogEntry{
			Status:  storefront.LogStatusInvalid,
			Message: "Sales order already exists, not synced",
		})
		return
	}

	err = s.tx.Do(ctx, func(txCtx context.Context) error {
		if order.Customer != nil && order.Customer.ID != 0 {
			if err := s.customers.SyncCustomer(txCtx, order.Customer, order.BillingAddress, order.ShippingAddress); err != nil {
				return err
			}
		}

		if err := s.catalog.EnsureItems(txCtx, order); err != nil {
			return err
		}

		settings, err := s.settings.Get(txCtx)
		if err != nil {
			return err
		}

		so, err := s.mapper.CreateOrder(txCtx, order, settings, "")
		if err != nil {
			return err
		}

		return s.dependents.CreateForOrder(txCtx, order, so)
	})
	if err != nil {
		log.Error("order sync failed",
			zap.String("external_order_id", order.ExternalID()),
			zap.Error(err),
		)
		s.logOutcome(ctx, requestID, MethodOrderCreate, storefront.LogEntry{
			Status:    storefront.LogStatusError,
			Exception: err.Error(),
			Rollback:  true,
		})
		return
	}

	s.logOutcome(ctx, requestID, MethodOrderCreate, storefront.LogEntry{
		Status: storefront.LogStatusSuccess,
	})
}

// logOutcome writes the terminal sync log entry for an attempt. Log write
// failures are reported to the application log only; the sync outcome is
// already decided at that point.
func (s *IntakeService) logOutcome(ctx context.Context, requestID, method string, entry storefront.LogEntry) {
	full := storefront.NewLogEntry(requestID, method, entry.Status)
	full.Message = entry.Message
	full.Exception = entry.Exception
	full.Rollback = entry.Rollback
	full.RequestData = entry.RequestData

	if err := s.syncLog.Log(ctx, full); err != nil {
		logger.L(ctx).Error("failed to write sync log entry",
			zap.String("method", method),
			zap.String("status", entry.Status.String()),
			zap.Error(err),
		)
	}
}
