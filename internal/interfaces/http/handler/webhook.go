package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/application/orders"
	"github.com/erp/storefront-sync/internal/domain/shared"
	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/logger"
	"github.com/erp/storefront-sync/internal/interfaces/http/dto"
	"github.com/erp/storefront-sync/internal/interfaces/http/middleware"
)

// deliveryIDHeader carries the platform's unique id for one webhook
// delivery attempt; redeliveries of the same event reuse it.
const deliveryIDHeader = "X-Shopify-Webhook-Id"

// WebhookHandler handles storefront webhook deliveries. Every accepted
// delivery is answered 200 regardless of the sync outcome: failures are
// recorded in the sync log, and a retry storm from the platform would only
// produce duplicate-order Invalid entries.
type WebhookHandler struct {
	intake    *orders.IntakeService
	lifecycle *orders.LifecycleService
	syncLog   storefront.SyncLogger
	dedup     shared.IdempotencyStore
	dedupTTL  time.Duration
	validate  *validator.Validate
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(
	intake *orders.IntakeService,
	lifecycle *orders.LifecycleService,
	syncLog storefront.SyncLogger,
	dedup shared.IdempotencyStore,
	dedupCfg shared.IdempotencyConfig,
) *WebhookHandler {
	return &WebhookHandler{
		intake:    intake,
		lifecycle: lifecycle,
		syncLog:   syncLog,
		dedup:     dedup,
		dedupTTL:  dedupCfg.TTL,
		validate:  validator.New(),
	}
}

// handledResponse is the body returned for every accepted delivery.
type handledResponse struct {
	Handled   bool   `json:"handled"`
	RequestID string `json:"request_id"`
}

// OrderCreated handles the orders/create webhook
func (h *WebhookHandler) OrderCreated(c *gin.Context) {
	h.handle(c, orders.MethodOrderCreate, func(ctx *gin.Context, order *storefront.Order, requestID string) {
		h.intake.SyncOrder(ctx.Request.Context(), order, requestID)
	})
}

// OrderCancelled handles the orders/cancelled webhook
func (h *WebhookHandler) OrderCancelled(c *gin.Context) {
	h.handle(c, orders.MethodOrderCancel, func(ctx *gin.Context, order *storefront.Order, requestID string) {
		h.lifecycle.CancelOrder(ctx.Request.Context(), order, requestID)
	})
}

// handle runs the shared delivery pipeline: dedup, decode, validate, then
// the method-specific sync. Decode and validation failures are recorded as
// Invalid log entries; the delivery is still answered 200 since retrying an
// unparseable payload cannot succeed.
func (h *WebhookHandler) handle(c *gin.Context, method string, sync func(*gin.Context, *storefront.Order, string)) {
	ctx := c.Request.Context()
	requestID := c.GetHeader(deliveryIDHeader)
	if requestID == "" {
		requestID = logger.RequestID(c)
	}

	fresh, err := h.dedup.MarkProcessed(ctx, method+":"+requestID, h.dedupTTL)
	if err != nil {
		// Dedup is best effort; the database existence check still guards
		// against duplicate documents.
		logger.L(ctx).Warn("delivery dedup check failed", zap.Error(err))
		fresh = true
	}
	if !fresh {
		logger.L(ctx).Info("duplicate webhook delivery skipped",
			zap.String("method", method),
			zap.String("delivery_id", requestID),
		)
		c.JSON(http.StatusOK, dto.NewSuccessResponse(handledResponse{Handled: true, RequestID: requestID}))
		return
	}

	body := middleware.RawBody(c)
	order, err := h.decodeOrder(body)
	if err != nil {
		logger.L(ctx).Warn("invalid webhook payload",
			zap.String("method", method),
			zap.Error(err),
		)
		h.logInvalid(c, method, requestID, body, err)
		c.JSON(http.StatusOK, dto.NewSuccessResponse(handledResponse{Handled: true, RequestID: requestID}))
		return
	}

	sync(c, order, requestID)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(handledResponse{Handled: true, RequestID: requestID}))
}

// decodeOrder parses and validates the raw payload into a typed order.
func (h *WebhookHandler) decodeOrder(body []byte) (*storefront.Order, error) {
	var order storefront.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, err
	}
	if err := h.validate.Struct(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// logInvalid records an Invalid sync log entry for an undecodable payload,
// keeping the raw bytes for audit.
func (h *WebhookHandler) logInvalid(c *gin.Context, method, requestID string, body []byte, cause error) {
	entry := storefront.NewLogEntry(requestID, method, storefront.LogStatusInvalid)
	entry.Message = "Invalid order payload"
	entry.Exception = cause.Error()
	entry.RequestData = string(body)

	if err := h.syncLog.Log(c.Request.Context(), entry); err != nil {
		logger.L(c.Request.Context()).Error("failed to write sync log entry",
			zap.String("method", method),
			zap.Error(err),
		)
	}
}
