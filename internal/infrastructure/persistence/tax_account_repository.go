package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence/models"
)

// GormTaxAccountRepository implements storefront.TaxAccountResolver backed
// by the tax_account_mappings table.
type GormTaxAccountRepository struct {
	db *gorm.DB
}

var _ storefront.TaxAccountResolver = (*GormTaxAccountRepository)(nil)

// NewGormTaxAccountRepository creates a new GormTaxAccountRepository
func NewGormTaxAccountRepository(db *gorm.DB) *GormTaxAccountRepository {
	return &GormTaxAccountRepository{db: db}
}

// Resolve returns the ledger account mapped to the tax title. A missing
// mapping is a hard failure: amounts must never post to a guessed account.
func (r *GormTaxAccountRepository) Resolve(ctx context.Context, taxTitle string) (storefront.TaxAccount, error) {
	var model models.TaxAccountMappingModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("tax_title = ?", taxTitle).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return storefront.TaxAccount{}, fmt.Errorf("tax title %q: %w", taxTitle, storefront.ErrTaxAccountNotMapped)
		}
		return storefront.TaxAccount{}, err
	}
	return storefront.TaxAccount{
		AccountHead: model.AccountHead,
		Description: model.Description,
	}, nil
}
