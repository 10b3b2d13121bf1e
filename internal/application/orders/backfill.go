package orders

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/logger"
)

// BackfillService drives the historical order sync: a date-bounded,
// page-iterated fetch from the storefront API feeding every order through
// the regular intake path. The sequence is lazy and forward-only; it is not
// restartable mid-iteration, a new run restarts from the range start.
type BackfillService struct {
	settings storefront.SettingsRepository
	source   storefront.OrderSource
	intake   *IntakeService
	syncLog  storefront.SyncLogger
}

// NewBackfillService creates a new BackfillService.
func NewBackfillService(
	settings storefront.SettingsRepository,
	source storefront.OrderSource,
	intake *IntakeService,
	syncLog storefront.SyncLogger,
) *BackfillService {
	return &BackfillService{
		settings: settings,
		source:   source,
		intake:   intake,
		syncLog:  syncLog,
	}
}

// SyncOldOrders fetches all orders in the configured date range and runs
// each through intake. Returns storefront.ErrSyncDisabled when the settings
// flag is off. The flag is cleared after a completed run so the backfill
// executes once per enablement.
func (s *BackfillService) SyncOldOrders(ctx context.Context) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.SyncOldOrders {
		return storefront.ErrSyncDisabled
	}

	log := logger.L(ctx)
	log.Info("starting old order backfill",
		zap.Time("from", settings.OldOrdersFrom),
		zap.Time("to", settings.OldOrdersTo),
	)

	pager, err := s.source.FetchOrders(ctx, settings.OldOrdersFrom, settings.OldOrdersTo)
	if err != nil {
		s.logBackfill(ctx, storefront.LogStatusError, err.Error())
		return err
	}

	var total int
	for {
		page, more, err := pager.NextPage(ctx)
		if err != nil {
			s.logBackfill(ctx, storefront.LogStatusError, err.Error())
			return err
		}

		for i := range page {
			order := &page[i]
			requestID := uuid.NewString()
			s.logQueued(ctx, requestID, order)
			s.intake.SyncOrder(ctx, order, requestID)
			total++
		}

		if !more {
			break
		}
	}

	settings.SyncOldOrders = false
	if err := s.settings.Save(ctx, settings); err != nil {
		s.logBackfill(ctx, storefront.LogStatusError, err.Error())
		return err
	}

	log.Info("old order backfill completed", zap.Int("orders", total))
	s.logBackfill(ctx, storefront.LogStatusSuccess, "")
	return nil
}

// logQueued records the raw payload for the iteration before intake runs,
// mirroring the per-delivery entries written for webhooks.
func (s *BackfillService) logQueued(ctx context.Context, requestID string, order *storefront.Order) {
	entry := storefront.NewLogEntry(requestID, MethodOrderCreate, storefront.LogStatusQueued)
	if raw, err := json.Marshal(order); err == nil {
		entry.RequestData = string(raw)
	}
	if err := s.syncLog.Log(ctx, entry); err != nil {
		logger.L(ctx).Error("failed to write backfill queue entry", zap.Error(err))
	}
}

func (s *BackfillService) logBackfill(ctx context.Context, status storefront.LogStatus, exception string) {
	entry := storefront.NewLogEntry("", MethodOrderBackfill, status)
	entry.Exception = exception
	if err := s.syncLog.Log(ctx, entry); err != nil {
		logger.L(ctx).Error("failed to write backfill log entry", zap.Error(err))
	}
}
