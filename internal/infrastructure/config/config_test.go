package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SYNC_APP_NAME":                  os.Getenv("SYNC_APP_NAME"),
		"SYNC_APP_ENV":                   os.Getenv("SYNC_APP_ENV"),
		"SYNC_APP_PORT":                  os.Getenv("SYNC_APP_PORT"),
		"SYNC_DATABASE_HOST":             os.Getenv("SYNC_DATABASE_HOST"),
		"SYNC_DATABASE_PORT":             os.Getenv("SYNC_DATABASE_PORT"),
		"SYNC_DATABASE_PASSWORD":         os.Getenv("SYNC_DATABASE_PASSWORD"),
		"SYNC_DATABASE_SSLMODE":          os.Getenv("SYNC_DATABASE_SSLMODE"),
		"SYNC_DATABASE_MAX_OPEN_CONNS":   os.Getenv("SYNC_DATABASE_MAX_OPEN_CONNS"),
		"SYNC_DATABASE_MAX_IDLE_CONNS":   os.Getenv("SYNC_DATABASE_MAX_IDLE_CONNS"),
		"SYNC_STOREFRONT_SHOP_URL":       os.Getenv("SYNC_STOREFRONT_SHOP_URL"),
		"SYNC_STOREFRONT_ACCESS_TOKEN":   os.Getenv("SYNC_STOREFRONT_ACCESS_TOKEN"),
		"SYNC_STOREFRONT_WEBHOOK_SECRET": os.Getenv("SYNC_STOREFRONT_WEBHOOK_SECRET"),
		"SYNC_STOREFRONT_PAGE_LIMIT":     os.Getenv("SYNC_STOREFRONT_PAGE_LIMIT"),
		"SYNC_SYNC_COMPANY":              os.Getenv("SYNC_SYNC_COMPANY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront-sync", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storefront_sync", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "2024-01", cfg.Storefront.APIVersion)
		assert.Equal(t, 250, cfg.Storefront.PageLimit)
		assert.Equal(t, int64(64<<10), cfg.HTTP.MaxBodySize)
		assert.Equal(t, "SO-WEB-", cfg.Sync.SalesOrderSeries)
	})

	t.Run("loads values from environment variables with SYNC prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_APP_NAME", "test-sync")
		os.Setenv("SYNC_APP_PORT", "9000")
		os.Setenv("SYNC_DATABASE_HOST", "testdb.local")
		os.Setenv("SYNC_DATABASE_PORT", "5433")
		os.Setenv("SYNC_STOREFRONT_SHOP_URL", "https://acme.myshopify.com")
		os.Setenv("SYNC_STOREFRONT_PAGE_LIMIT", "100")
		os.Setenv("SYNC_SYNC_COMPANY", "Acme Ltd")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-sync", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "https://acme.myshopify.com", cfg.Storefront.ShopURL)
		assert.Equal(t, 100, cfg.Storefront.PageLimit)
		assert.Equal(t, "Acme Ltd", cfg.Sync.Company)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("SYNC_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates page limit range", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_STOREFRONT_PAGE_LIMIT", "500")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page_limit")
	})

	t.Run("production requires webhook secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_APP_ENV", "production")
		os.Setenv("SYNC_DATABASE_PASSWORD", "secret")
		os.Setenv("SYNC_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "webhook_secret")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss word",
		DBName:   "storefront_sync",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "storefront_sync")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters must be escaped
	assert.NotContains(t, dsn, "p@ss word")
}
