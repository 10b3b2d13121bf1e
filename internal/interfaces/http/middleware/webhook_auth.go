package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/storefront-sync/internal/interfaces/http/dto"
)

// SignatureHeader carries the platform's base64-encoded HMAC-SHA256 of the
// raw request body.
const SignatureHeader = "X-Shopify-Hmac-Sha256"

// rawBodyKey is the gin context key the verified raw body is stored under.
const rawBodyKey = "webhook_raw_body"

// VerifyWebhookSignature returns a middleware that authenticates webhook
// deliveries: it reads the raw body, recomputes the HMAC with the shared
// secret, and rejects the request on mismatch. The verified body is stashed
// on the context so handlers decode exactly the bytes that were signed.
func VerifyWebhookSignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse("INVALID_BODY", "Failed to read request body"))
			return
		}

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

		provided := c.GetHeader(SignatureHeader)
		if provided == "" || !hmac.Equal([]byte(expected), []byte(provided)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("INVALID_SIGNATURE", "Webhook signature verification failed"))
			return
		}

		c.Set(rawBodyKey, body)
		c.Next()
	}
}

// RawBody returns the verified webhook body stored by VerifyWebhookSignature.
func RawBody(c *gin.Context) []byte {
	if body, ok := c.Get(rawBodyKey); ok {
		if raw, ok := body.([]byte); ok {
			return raw
		}
	}
	return nil
}
