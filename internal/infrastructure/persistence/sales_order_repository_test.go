package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/erp/storefront-sync/internal/domain/document"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormSalesOrderRepository_ExistsByExternalID(t *testing.T) {
	t.Run("returns true when an order exists", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSalesOrderRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales_orders" WHERE external_order_id = \$1`).
			WithArgs("5423168632568").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByExternalID(context.Background(), "5423168632568")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when no order exists", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSalesOrderRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales_orders" WHERE external_order_id = \$1`).
			WithArgs("999").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByExternalID(context.Background(), "999")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSalesOrderRepository_FindByExternalID(t *testing.T) {
	t.Run("returns ErrSalesOrderNotFound for unknown id", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSalesOrderRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "sales_orders" WHERE external_order_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByExternalID(context.Background(), "999")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, document.ErrSalesOrderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
