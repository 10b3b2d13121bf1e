package ecommerce

import (
	"github.com/erp/storefront-sync/internal/domain/storefront"
)

// ---------------------------------------------------------------------------
// Shopify Admin API Response Types
// ---------------------------------------------------------------------------

// shopifyOrdersResponse is the response envelope of the orders listing
// endpoint. The order objects decode straight into the domain payload type:
// the webhook and the Admin API share one order representation.
type shopifyOrdersResponse struct {
	Orders []storefront.Order `json:"orders"`
}

// shopifyErrorResponse is the error envelope returned on non-2xx statuses.
type shopifyErrorResponse struct {
	Errors any `json:"errors"`
}
