package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence/models"
)

// GormSettingsRepository implements storefront.SettingsRepository backed by
// a singleton row.
type GormSettingsRepository struct {
	db       *gorm.DB
	defaults storefront.Settings
}

var _ storefront.SettingsRepository = (*GormSettingsRepository)(nil)

// NewGormSettingsRepository creates a new GormSettingsRepository. The
// defaults seed the singleton row when none exists yet.
func NewGormSettingsRepository(db *gorm.DB, defaults storefront.Settings) *GormSettingsRepository {
	return &GormSettingsRepository{db: db, defaults: defaults}
}

// Get returns the current settings, seeding the row from the configured
// defaults on first access.
func (r *GormSettingsRepository) Get(ctx context.Context) (*storefront.Settings, error) {
	var model models.SettingsModel
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&model, "id = ?", models.SettingsRowID).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seeded := r.defaults
	if err := r.Save(ctx, &seeded); err != nil {
		return nil, err
	}
	return &seeded, nil
}

// Save persists the settings singleton
func (r *GormSettingsRepository) Save(ctx context.Context, settings *storefront.Settings) error {
	model := &models.SettingsModel{}
	model.FromDomain(settings)
	return dbFromContext(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model).Error
}
