package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/storefront-sync/internal/domain/document"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence/models"
)

// GormSalesOrderRepository implements document.SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

var _ document.SalesOrderRepository = (*GormSalesOrderRepository)(nil)

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByExternalID finds a sales order by the storefront order id
func (r *GormSalesOrderRepository) FindByExternalID(ctx context.Context, externalOrderID string) (*document.SalesOrder, error) {
	var model models.SalesOrderModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("idx") }).
		Preload("Taxes", func(db *gorm.DB) *gorm.DB { return db.Order("idx") }).
		Where("external_order_id = ?", externalOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, document.ErrSalesOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByExternalID reports whether a sales order exists for the storefront order id
func (r *GormSalesOrderRepository) ExistsByExternalID(ctx context.Context, externalOrderID string) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&models.SalesOrderModel{}).
		Where("external_order_id = ?", externalOrderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a sales order with its items and taxes. Children
// are replaced wholesale so updates cannot leave stale rows behind.
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *document.SalesOrder) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)
	model := models.SalesOrderModelFromDomain(order)

	if err := db.Where("order_id = ?", model.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", model.ID).Delete(&models.TaxChargeModel{}).Error; err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model).Error
}
