package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newSignatureRouter(secret string) (*gin.Engine, *[]byte) {
	gin.SetMode(gin.TestMode)
	var captured []byte

	router := gin.New()
	router.POST("/hook", VerifyWebhookSignature(secret), func(c *gin.Context) {
		captured = RawBody(c)
		c.Status(http.StatusOK)
	})
	return router, &captured
}

func TestVerifyWebhookSignature(t *testing.T) {
	const secret = "shared-secret"
	const body = `{"id":1001}`

	t.Run("accepts a correctly signed delivery", func(t *testing.T) {
		router, captured := newSignatureRouter(secret)

		req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body))
		req.Header.Set(SignatureHeader, signBody(secret, body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []byte(body), *captured)
	})

	t.Run("rejects a wrong signature", func(t *testing.T) {
		router, _ := newSignatureRouter(secret)

		req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body))
		req.Header.Set(SignatureHeader, signBody("other-secret", body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_SIGNATURE")
	})

	t.Run("rejects a missing signature header", func(t *testing.T) {
		router, _ := newSignatureRouter(secret)

		req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a tampered body", func(t *testing.T) {
		router, _ := newSignatureRouter(secret)

		req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(`{"id":9999}`))
		req.Header.Set(SignatureHeader, signBody(secret, body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/hook", BodyLimit(16), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("passes small bodies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader("tiny"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects oversized bodies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(strings.Repeat("x", 64)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
	})
}
