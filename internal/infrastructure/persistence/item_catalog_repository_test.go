package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ItemMappingModel{}))
	return db
}

func seedItemMapping(t *testing.T, db *gorm.DB, productID int64, itemCode string, disabled bool) {
	t.Helper()
	err := db.Create(&models.ItemMappingModel{
		ID:                uuid.New(),
		ExternalProductID: productID,
		ItemCode:          itemCode,
		Disabled:          disabled,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}).Error
	require.NoError(t, err)
}

func TestGormItemCatalogRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("EnsureItems matches on the product id, not the line item id", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormItemCatalogRepository(db)
		seedItemMapping(t, db, 632910392, "IPOD-NANO-8", false)
		// A mapping keyed on the line item id must not count as a match.
		seedItemMapping(t, db, 866550311766439021, "WRONG-KEY", false)

		order := &storefront.Order{
			LineItems: []storefront.LineItem{
				{ID: 866550311766439020, ProductID: 632910392, Title: "IPod Nano - 8GB"},
				{ID: 866550311766439021, ProductID: 540987654, Title: "Unmapped Gadget"},
			},
		}

		require.NoError(t, repo.EnsureItems(ctx, order))
		assert.True(t, order.LineItems[0].ProductExists)
		assert.False(t, order.LineItems[1].ProductExists)
	})

	t.Run("EnsureItems ignores disabled mappings", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormItemCatalogRepository(db)
		seedItemMapping(t, db, 632910392, "IPOD-NANO-8", true)

		order := &storefront.Order{
			LineItems: []storefront.LineItem{
				{ID: 866550311766439020, ProductID: 632910392, Title: "IPod Nano - 8GB"},
			},
		}

		require.NoError(t, repo.EnsureItems(ctx, order))
		assert.False(t, order.LineItems[0].ProductExists)
	})

	t.Run("ItemCode resolves through the product id", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormItemCatalogRepository(db)
		seedItemMapping(t, db, 632910392, "IPOD-NANO-8", false)

		code, err := repo.ItemCode(ctx, &storefront.LineItem{
			ID:        866550311766439020,
			ProductID: 632910392,
		})
		require.NoError(t, err)
		assert.Equal(t, "IPOD-NANO-8", code)
	})

	t.Run("unknown product maps to the sentinel error", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormItemCatalogRepository(db)

		_, err := repo.ItemCode(ctx, &storefront.LineItem{
			ID:        866550311766439020,
			ProductID: 540987654,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, storefront.ErrItemNotResolved))
		assert.Contains(t, err.Error(), "product 540987654")
	})
}
