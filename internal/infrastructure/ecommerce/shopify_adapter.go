package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/erp/storefront-sync/internal/domain/storefront"
)

// maxShopifyResponseSize limits the response body size to prevent memory exhaustion
const maxShopifyResponseSize = 10 * 1024 * 1024 // 10MB max response

// accessTokenHeader authenticates Admin API requests.
const accessTokenHeader = "X-Shopify-Access-Token"

// ShopifyAdapter implements the storefront.OrderSource interface against the
// Shopify Admin REST API. It is only used by the historical backfill; live
// sync is webhook-driven.
type ShopifyAdapter struct {
	config     *ShopifyConfig
	httpClient *http.Client
}

var _ storefront.OrderSource = (*ShopifyAdapter)(nil)

// NewShopifyAdapter creates a new Shopify adapter with the given configuration
func NewShopifyAdapter(config *ShopifyConfig) (*ShopifyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &ShopifyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// FetchOrders returns a pager over orders created within [from, to]. Pages
// are fetched on demand, cursor-style, to stay under API rate limits.
func (a *ShopifyAdapter) FetchOrders(ctx context.Context, from, to time.Time) (storefront.OrderPager, error) {
	query := url.Values{}
	query.Set("status", "any")
	query.Set("limit", strconv.Itoa(a.config.PageLimit))
	if !from.IsZero() {
		query.Set("created_at_min", from.UTC().Format(time.RFC3339))
	}
	if !to.IsZero() {
		query.Set("created_at_max", to.UTC().Format(time.RFC3339))
	}

	first := fmt.Sprintf("%s/admin/api/%s/orders.json?%s",
		strings.TrimSuffix(a.config.ShopURL, "/"),
		a.config.APIVersion,
		query.Encode(),
	)

	return &shopifyOrderPager{adapter: a, nextURL: first}, nil
}

// shopifyOrderPager walks the Link-header pagination of the orders endpoint.
// It is forward-only: the cursor in each page's Link header is only valid
// relative to that page.
type shopifyOrderPager struct {
	adapter *ShopifyAdapter
	nextURL string
}

var _ storefront.OrderPager = (*shopifyOrderPager)(nil)

// NextPage fetches the next page of orders. The second return value is false
// once the Link header carries no rel="next" cursor.
func (p *shopifyOrderPager) NextPage(ctx context.Context) ([]storefront.Order, bool, error) {
	if p.nextURL == "" {
		return nil, false, nil
	}

	orders, next, err := p.adapter.fetchPage(ctx, p.nextURL)
	if err != nil {
		return nil, false, err
	}
	p.nextURL = next
	return orders, next != "", nil
}

// fetchPage executes one orders request and returns the decoded page plus
// the rel="next" URL, empty when the listing is exhausted.
func (a *ShopifyAdapter) fetchPage(ctx context.Context, pageURL string) ([]storefront.Order, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: build orders request: %w", err)
	}
	req.Header.Set(accessTokenHeader, a.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: fetch orders: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShopifyResponseSize))
	if err != nil {
		return nil, "", fmt.Errorf("shopify: read orders response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp shopifyErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Errors != nil {
			return nil, "", fmt.Errorf("shopify: orders request failed with status %d: %v", resp.StatusCode, errResp.Errors)
		}
		return nil, "", fmt.Errorf("shopify: orders request failed with status %d", resp.StatusCode)
	}

	var page shopifyOrdersResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", fmt.Errorf("shopify: decode orders response: %w", err)
	}

	return page.Orders, parseNextLink(resp.Header.Get("Link")), nil
}

// parseNextLink extracts the rel="next" URL from a Link header of the form
//
//	<https://...&page_info=abc>; rel="previous", <https://...&page_info=def>; rel="next"
//
// and returns empty when no next link is present.
func parseNextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		if !strings.Contains(section[1], `rel="next"`) {
			continue
		}
		link := strings.TrimSpace(section[0])
		link = strings.TrimPrefix(link, "<")
		link = strings.TrimSuffix(link, ">")
		return link
	}
	return ""
}
