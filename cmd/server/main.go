package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/application/orders"
	"github.com/erp/storefront-sync/internal/domain/shared"
	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/cache"
	"github.com/erp/storefront-sync/internal/infrastructure/config"
	"github.com/erp/storefront-sync/internal/infrastructure/ecommerce"
	"github.com/erp/storefront-sync/internal/infrastructure/logger"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence"
	"github.com/erp/storefront-sync/internal/infrastructure/scheduler"
	"github.com/erp/storefront-sync/internal/interfaces/http/handler"
	"github.com/erp/storefront-sync/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Storefront Sync",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Webhook delivery dedup store
	dedup := cache.NewIdempotencyStore(cfg.Redis, log)
	defer func() {
		if err := dedup.Close(); err != nil {
			log.Error("Error closing dedup store", zap.Error(err))
		}
	}()

	// Repositories
	settingsDefaults := storefront.Settings{
		SalesOrderSeries: cfg.Sync.SalesOrderSeries,
		DefaultCustomer:  cfg.Sync.DefaultCustomer,
		Company:          cfg.Sync.Company,
		PriceList:        cfg.Sync.PriceList,
		Warehouse:        cfg.Sync.Warehouse,
		CostCenter:       cfg.Sync.CostCenter,
	}
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormSalesInvoiceRepository(db.DB)
	deliveryNoteRepo := persistence.NewGormDeliveryNoteRepository(db.DB)
	syncLogRepo := persistence.NewGormSyncLogRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB, settingsDefaults)
	taxAccountRepo := persistence.NewGormTaxAccountRepository(db.DB)
	itemCatalogRepo := persistence.NewGormItemCatalogRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Application services
	mapper := orders.NewMapperService(salesOrderRepo, customerRepo, itemCatalogRepo, taxAccountRepo)
	dependents := orders.NewDependentDocsService(invoiceRepo, deliveryNoteRepo)
	intake := orders.NewIntakeService(txManager, salesOrderRepo, settingsRepo, customerRepo, itemCatalogRepo, mapper, dependents, syncLogRepo)
	lifecycle := orders.NewLifecycleService(salesOrderRepo, invoiceRepo, deliveryNoteRepo, syncLogRepo)

	// Historical backfill: Admin API source plus periodic trigger
	rootCtx := logger.WithContext(context.Background(), log)
	backfillTrigger := startBackfill(rootCtx, cfg, log, settingsRepo, intake, syncLogRepo)
	if backfillTrigger != nil {
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := backfillTrigger.Stop(stopCtx); err != nil {
				log.Error("Error stopping backfill trigger", zap.Error(err))
			}
		}()
	}

	// HTTP layer
	webhookHandler := handler.NewWebhookHandler(intake, lifecycle, syncLogRepo, dedup, shared.DefaultIdempotencyConfig())
	systemHandler := handler.NewSystemHandler(db)

	engine, err := router.New(cfg, log, webhookHandler, systemHandler)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// startBackfill wires the Admin API order source and starts the periodic
// backfill trigger. Disabled or misconfigured backfill logs and returns nil
// rather than blocking startup: webhook sync works without it.
func startBackfill(
	ctx context.Context,
	cfg *config.Config,
	log *zap.Logger,
	settingsRepo storefront.SettingsRepository,
	intake *orders.IntakeService,
	syncLog storefront.SyncLogger,
) *scheduler.BackfillTrigger {
	if !cfg.Backfill.Enabled {
		log.Info("Backfill disabled by configuration")
		return nil
	}

	shopifyCfg := ecommerce.NewShopifyConfig(cfg.Storefront.ShopURL, cfg.Storefront.AccessToken)
	shopifyCfg.APIVersion = cfg.Storefront.APIVersion
	shopifyCfg.PageLimit = cfg.Storefront.PageLimit
	shopifyCfg.TimeoutSeconds = int(cfg.Storefront.Timeout / time.Second)

	source, err := ecommerce.NewShopifyAdapter(shopifyCfg)
	if err != nil {
		log.Warn("Backfill disabled: storefront API not configured", zap.Error(err))
		return nil
	}

	backfill := orders.NewBackfillService(settingsRepo, source, intake, syncLog)
	trigger := scheduler.NewBackfillTrigger(scheduler.BackfillTriggerConfig{
		CheckInterval: cfg.Backfill.CheckInterval,
	}, backfill, log)

	if err := trigger.Start(ctx); err != nil {
		log.Error("Failed to start backfill trigger", zap.Error(err))
		return nil
	}
	return trigger
}
