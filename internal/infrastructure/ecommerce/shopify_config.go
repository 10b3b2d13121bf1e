package ecommerce

import (
	"errors"
	"strings"
)

// ShopifyConfig holds configuration for the Shopify Admin API integration
type ShopifyConfig struct {
	// ShopURL is the shop's base URL, e.g. "https://acme.myshopify.com"
	ShopURL string
	// APIVersion is the Admin API version, e.g. "2024-01"
	APIVersion string
	// AccessToken is the Admin API access token
	AccessToken string
	// PageLimit is the number of orders requested per page (max 250)
	PageLimit int
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// DefaultShopifyAPIVersion is used when no version is configured.
const DefaultShopifyAPIVersion = "2024-01"

// maxShopifyPageLimit is the Admin API's hard cap on orders per page.
const maxShopifyPageLimit = 250

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingShopURL     = errors.New("shopify: shop URL is required")
	ErrShopifyConfigMissingAccessToken = errors.New("shopify: access token is required")
	ErrShopifyConfigInvalidPageLimit   = errors.New("shopify: page limit must be between 1 and 250")
)

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig(shopURL, accessToken string) *ShopifyConfig {
	return &ShopifyConfig{
		ShopURL:        strings.TrimSuffix(shopURL, "/"),
		APIVersion:     DefaultShopifyAPIVersion,
		AccessToken:    accessToken,
		PageLimit:      maxShopifyPageLimit,
		TimeoutSeconds: 30,
	}
}

// Validate checks the configuration for required fields
func (c *ShopifyConfig) Validate() error {
	if c.ShopURL == "" {
		return ErrShopifyConfigMissingShopURL
	}
	if c.AccessToken == "" {
		return ErrShopifyConfigMissingAccessToken
	}
	if c.PageLimit < 1 || c.PageLimit > maxShopifyPageLimit {
		return ErrShopifyConfigInvalidPageLimit
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultShopifyAPIVersion
	}
	return nil
}
