package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/erp/storefront-sync/internal/domain/storefront"
)

func TestGormSyncLogRepository_Log(t *testing.T) {
	t.Run("inserts a new entry", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSyncLogRepository(db)

		entry := storefront.NewLogEntry("req-1", "orders/create", storefront.LogStatusSuccess)

		mock.ExpectExec(`INSERT INTO "sync_logs"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Log(context.Background(), entry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("assigns id and timestamp when zero", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSyncLogRepository(db)

		entry := storefront.LogEntry{
			Method: "orders/cancelled",
			Status: storefront.LogStatusError,
		}
		assert.Equal(t, uuid.Nil, entry.ID)

		mock.ExpectExec(`INSERT INTO "sync_logs"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Log(context.Background(), entry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTaxAccountRepository_Resolve(t *testing.T) {
	t.Run("returns ErrTaxAccountNotMapped for unknown title", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTaxAccountRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "tax_account_mappings" WHERE tax_title = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("Unknown Tax", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tax_title", "account_head"}))

		_, err := repo.Resolve(context.Background(), "Unknown Tax")

		assert.ErrorIs(t, err, storefront.ErrTaxAccountNotMapped)
		assert.Contains(t, err.Error(), "Unknown Tax")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns the mapped account", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTaxAccountRepository(db)

		rows := sqlmock.NewRows([]string{"id", "tax_title", "account_head", "description"}).
			AddRow(uuid.New(), "VAT", "VAT - ACME", "Value Added Tax")

		mock.ExpectQuery(`SELECT \* FROM "tax_account_mappings" WHERE tax_title = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("VAT", 1).
			WillReturnRows(rows)

		account, err := repo.Resolve(context.Background(), "VAT")

		assert.NoError(t, err)
		assert.Equal(t, "VAT - ACME", account.AccountHead)
		assert.Equal(t, "Value Added Tax", account.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_CustomerName(t *testing.T) {
	t.Run("returns empty for unknown customer without error", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE external_customer_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(42), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "external_customer_id", "name"}))

		name, err := repo.CustomerName(context.Background(), 42)

		assert.NoError(t, err)
		assert.Empty(t, name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
