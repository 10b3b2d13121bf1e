package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/infrastructure/config"
	"github.com/erp/storefront-sync/internal/infrastructure/logger"
	"github.com/erp/storefront-sync/internal/interfaces/http/handler"
	"github.com/erp/storefront-sync/internal/interfaces/http/middleware"
)

// New builds the HTTP router. Webhook endpoints sit behind body limiting and
// HMAC verification; system endpoints are open.
func New(
	cfg *config.Config,
	log *zap.Logger,
	webhooks *handler.WebhookHandler,
	system *handler.SystemHandler,
) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.GET("/health", system.Health)
	engine.GET("/system/info", system.GetSystemInfo)

	hooks := engine.Group("/webhooks",
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.VerifyWebhookSignature(cfg.Storefront.WebhookSecret),
	)
	hooks.POST("/orders/create", webhooks.OrderCreated)
	hooks.POST("/orders/cancelled", webhooks.OrderCancelled)

	return engine, nil
}
