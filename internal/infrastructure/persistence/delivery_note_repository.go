package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/storefront-sync/internal/domain/document"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence/models"
)

// GormDeliveryNoteRepository implements document.DeliveryNoteRepository using GORM
type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

var _ document.DeliveryNoteRepository = (*GormDeliveryNoteRepository)(nil)

// NewGormDeliveryNoteRepository creates a new GormDeliveryNoteRepository
func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

// ListByExternalID returns all delivery notes for the storefront order id
func (r *GormDeliveryNoteRepository) ListByExternalID(ctx context.Context, externalOrderID string) ([]document.DeliveryNote, error) {
	var rows []models.DeliveryNoteModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("external_order_id = ?", externalOrderID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	notes := make([]document.DeliveryNote, len(rows))
	for i := range rows {
		notes[i] = rows[i].ToDomain()
	}
	return notes, nil
}

// Save creates or updates a delivery note
func (r *GormDeliveryNoteRepository) Save(ctx context.Context, note *document.DeliveryNote) error {
	model := &models.DeliveryNoteModel{}
	model.FromDomain(note)
	return dbFromContext(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model).Error
}
