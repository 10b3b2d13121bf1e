package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/domain/storefront"
)

// BackfillRunner is the operation the trigger drives on each tick. It is
// implemented by the orders backfill service.
type BackfillRunner interface {
	SyncOldOrders(ctx context.Context) error
}

// BackfillTriggerConfig holds configuration for the backfill trigger
type BackfillTriggerConfig struct {
	// CheckInterval is how often to check whether a backfill was requested
	CheckInterval time.Duration
}

// DefaultBackfillTriggerConfig returns default backfill trigger configuration
func DefaultBackfillTriggerConfig() BackfillTriggerConfig {
	return BackfillTriggerConfig{
		CheckInterval: 5 * time.Minute,
	}
}

// BackfillTrigger periodically kicks the historical order backfill. Whether
// a run actually proceeds is decided by the persisted sync_old_orders flag,
// so the trigger can poll cheaply: a disabled flag is a no-op tick.
type BackfillTrigger struct {
	config BackfillTriggerConfig
	runner BackfillRunner
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewBackfillTrigger creates a new backfill trigger
func NewBackfillTrigger(config BackfillTriggerConfig, runner BackfillRunner, logger *zap.Logger) *BackfillTrigger {
	return &BackfillTrigger{
		config: config,
		runner: runner,
		logger: logger,
	}
}

// Start starts the backfill trigger
func (t *BackfillTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Backfill trigger started",
		zap.Duration("check_interval", t.config.CheckInterval),
	)

	return nil
}

// Stop stops the backfill trigger, waiting for an in-flight run to finish
// or the context to expire.
func (t *BackfillTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Backfill trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop polls the backfill on the configured interval
func (t *BackfillTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.runOnce(ctx)
		}
	}
}

// runOnce drives a single backfill attempt. A disabled flag is expected and
// logged at debug only.
func (t *BackfillTrigger) runOnce(ctx context.Context) {
	err := t.runner.SyncOldOrders(ctx)
	switch {
	case err == nil:
		t.logger.Info("Backfill run completed")
	case errors.Is(err, storefront.ErrSyncDisabled):
		t.logger.Debug("Backfill not requested, skipping")
	default:
		t.logger.Error("Backfill run failed", zap.Error(err))
	}
}
