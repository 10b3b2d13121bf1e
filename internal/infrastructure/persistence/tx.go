package persistence

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key carrying an open transaction handle.
type txKey struct{}

// withTx returns a context carrying the transaction handle.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext returns the transaction handle from the context when one is
// open, falling back to the given connection. Repositories route every query
// through this so writes inside a sync transaction join it transparently.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// GormTransactionManager runs functions inside a database transaction, with
// the transaction handle carried on the context.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Do executes fn inside a transaction. Any error returned by fn rolls the
// transaction back and is returned unchanged.
func (m *GormTransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
