package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/storefront-sync/internal/domain/document"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence/models"
)

// GormSalesInvoiceRepository implements document.SalesInvoiceRepository using GORM
type GormSalesInvoiceRepository struct {
	db *gorm.DB
}

var _ document.SalesInvoiceRepository = (*GormSalesInvoiceRepository)(nil)

// NewGormSalesInvoiceRepository creates a new GormSalesInvoiceRepository
func NewGormSalesInvoiceRepository(db *gorm.DB) *GormSalesInvoiceRepository {
	return &GormSalesInvoiceRepository{db: db}
}

// FindByExternalID finds an invoice by the storefront order id
func (r *GormSalesInvoiceRepository) FindByExternalID(ctx context.Context, externalOrderID string) (*document.SalesInvoice, error) {
	var model models.SalesInvoiceModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("external_order_id = ?", externalOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, document.ErrInvoiceNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an invoice
func (r *GormSalesInvoiceRepository) Save(ctx context.Context, invoice *document.SalesInvoice) error {
	model := &models.SalesInvoiceModel{}
	model.FromDomain(invoice)
	return dbFromContext(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model).Error
}
