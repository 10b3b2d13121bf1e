package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence/models"
)

// GormItemCatalogRepository implements storefront.ItemCatalog backed by the
// item_mappings table.
type GormItemCatalogRepository struct {
	db *gorm.DB
}

var _ storefront.ItemCatalog = (*GormItemCatalogRepository)(nil)

// NewGormItemCatalogRepository creates a new GormItemCatalogRepository
func NewGormItemCatalogRepository(db *gorm.DB) *GormItemCatalogRepository {
	return &GormItemCatalogRepository{db: db}
}

// EnsureItems resolves product existence for every line item of the order.
// Items are matched by their platform product id against the item mapping
// table; the flag feeds the all-or-nothing check during mapping.
func (r *GormItemCatalogRepository) EnsureItems(ctx context.Context, order *storefront.Order) error {
	ids := make([]int64, 0, len(order.LineItems))
	for i := range order.LineItems {
		ids = append(ids, order.LineItems[i].ProductID)
	}

	var mappings []models.ItemMappingModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("external_product_id IN ? AND disabled = false", ids).
		Find(&mappings).Error; err != nil {
		return err
	}

	known := make(map[int64]struct{}, len(mappings))
	for i := range mappings {
		known[mappings[i].ExternalProductID] = struct{}{}
	}
	for i := range order.LineItems {
		_, ok := known[order.LineItems[i].ProductID]
		order.LineItems[i].ProductExists = ok
	}
	return nil
}

// ItemCode returns the ERP item code mapped to the line item's product
func (r *GormItemCatalogRepository) ItemCode(ctx context.Context, item *storefront.LineItem) (string, error) {
	var model models.ItemMappingModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("external_product_id = ? AND disabled = false", item.ProductID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("product %d: %w", item.ProductID, storefront.ErrItemNotResolved)
		}
		return "", err
	}
	return model.ItemCode, nil
}
