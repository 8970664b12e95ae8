package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplypulse/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
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

func TestGormSupplierRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds existing supplier", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db)

		supplierID := uuid.New()
		tenantID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "name", "status"}).
			AddRow(supplierID, tenantID, "SUP-001", "Acme Traders", "ACTIVE")

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, supplierID, 1).
			WillReturnRows(rows)

		supplier, err := repo.FindByIDForTenant(context.Background(), tenantID, supplierID)

		require.NoError(t, err)
		assert.Equal(t, supplierID, supplier.ID)
		assert.Equal(t, "Acme Traders", supplier.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing supplier", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "suppliers"`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForTenant(context.Background(), uuid.New(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSupplierRepository_FindAllForTenant(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormSupplierRepository(db)

	tenantID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "name", "status"}).
		AddRow(uuid.New(), tenantID, "SUP-001", "Acme Traders", "ACTIVE").
		AddRow(uuid.New(), tenantID, "SUP-002", "Bharat Mills", "ACTIVE")

	mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE tenant_id = \$1 ORDER BY name ASC`).
		WithArgs(tenantID).
		WillReturnRows(rows)

	suppliers, err := repo.FindAllForTenant(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Len(t, suppliers, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSupplierRepository_UpdateReliability(t *testing.T) {
	t.Run("updates cached metric fields", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db)

		tenantID := uuid.New()
		supplierID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "name", "status"}).
			AddRow(supplierID, tenantID, "SUP-001", "Acme Traders", "ACTIVE")

		mock.ExpectQuery(`SELECT \* FROM "suppliers"`).
			WillReturnRows(rows)

		supplier, err := repo.FindByIDForTenant(context.Background(), tenantID, supplierID)
		require.NoError(t, err)
		require.NoError(t, supplier.UpdateReliability(7, decimal.NewFromFloat(82.5), time.Now()))

		mock.ExpectExec(`UPDATE "suppliers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.UpdateReliability(context.Background(), supplier)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row matched", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "name", "status"}).
			AddRow(uuid.New(), uuid.New(), "SUP-001", "Acme Traders", "ACTIVE")
		mock.ExpectQuery(`SELECT \* FROM "suppliers"`).WillReturnRows(rows)

		supplier, err := repo.FindByIDForTenant(context.Background(), uuid.New(), uuid.New())
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "suppliers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.UpdateReliability(context.Background(), supplier)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
