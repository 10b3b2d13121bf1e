package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence/models"
)

// GormSyncLogRepository implements storefront.SyncLogger using GORM.
//
// Entries are written on the base connection, never the transaction carried
// in the context: an Error entry has to survive the rollback it reports.
type GormSyncLogRepository struct {
	db *gorm.DB
}

var _ storefront.SyncLogger = (*GormSyncLogRepository)(nil)

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Log persists a new sync log entry
func (r *GormSyncLogRepository) Log(ctx context.Context, entry storefront.LogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(models.SyncLogModelFromDomain(entry)).Error
}

// ListByRequestID returns the log entries for one webhook delivery or
// backfill iteration, oldest first.
func (r *GormSyncLogRepository) ListByRequestID(ctx context.Context, requestID string) ([]storefront.LogEntry, error) {
	var rows []models.SyncLogModel
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]storefront.LogEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}
