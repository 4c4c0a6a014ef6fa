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
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
)

// newMockSaleRepository creates a GormSaleRepository with a mocked SQL connection
func newMockSaleRepository(t *testing.T) (*GormSaleRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormSaleRepository(gormDB), mock, mockDB
}

func TestGormSaleRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds sale with items and payments", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		saleID := uuid.New()
		itemID := uuid.New()

		saleRows := sqlmock.NewRows([]string{"id", "tenant_id", "folio", "type", "status", "warehouse_id", "subtotal", "tax_total", "total", "version"}).
			AddRow(saleID, tenantID, "V-00001", "POS", "DRAFT", uuid.New(), decimal.RequireFromString("200.00"), decimal.RequireFromString("32.00"), decimal.RequireFromString("232.00"), 1)

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, saleID, 1).
			WillReturnRows(saleRows)

		itemRows := sqlmock.NewRows([]string{"id", "sale_id", "product_id", "product_name", "product_sku", "unit_price", "quantity", "line_total"}).
			AddRow(itemID, saleID, uuid.New(), "Widget", "WIDGET-1", decimal.RequireFromString("100.00"), decimal.NewFromInt(2), decimal.RequireFromString("232.00"))

		mock.ExpectQuery(`SELECT \* FROM "sale_items" WHERE "sale_items"\."sale_id" = \$1`).
			WithArgs(saleID).
			WillReturnRows(itemRows)

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE "payments"\."sale_id" = \$1`).
			WithArgs(saleID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "sale_id", "method", "amount"}))

		sale, err := repo.FindByIDForTenant(context.Background(), tenantID, saleID)

		require.NoError(t, err)
		assert.Equal(t, "V-00001", sale.Folio)
		assert.Equal(t, sales.SaleStatusDraft, sale.Status)
		require.Len(t, sale.Items, 1)
		assert.Equal(t, "WIDGET-1", sale.Items[0].ProductSKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing sale", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		saleID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, saleID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForTenant(context.Background(), tenantID, saleID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does not match sales of another tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		otherTenant := uuid.New()
		saleID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(otherTenant, saleID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForTenant(context.Background(), otherTenant, saleID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSaleRepository_NextFolioNumber(t *testing.T) {
	t.Run("allocates first number for a new tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`INSERT INTO sale_counters`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(int64(1)))

		n, err := repo.NextFolioNumber(context.Background(), tenantID)

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sequential allocations return distinct increasing numbers", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`INSERT INTO sale_counters`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(int64(7)))
		mock.ExpectQuery(`INSERT INTO sale_counters`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(int64(8)))

		first, err := repo.NextFolioNumber(context.Background(), tenantID)
		require.NoError(t, err)
		second, err := repo.NextFolioNumber(context.Background(), tenantID)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Equal(t, "V-00007", sales.FormatFolio(first))
		assert.Equal(t, "V-00008", sales.FormatFolio(second))
	})
}

func TestGormSaleRepository_ClaimCompletion(t *testing.T) {
	newCompletedSale := func(t *testing.T, tenantID uuid.UUID) *sales.Sale {
		t.Helper()
		sale, err := sales.NewSale(tenantID, "V-00001", uuid.New(), sales.SaleTypePOS)
		require.NoError(t, err)
		now := time.Now()
		sale.CompletedAt = &now
		return sale
	}

	t.Run("claims a draft sale", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		sale := newCompletedSale(t, tenantID)

		mock.ExpectExec(`UPDATE "sales" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ClaimCompletion(context.Background(), sale)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loses the race when the sale is no longer a draft", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		sale := newCompletedSale(t, tenantID)

		// Zero rows matched the status = DRAFT predicate
		mock.ExpectExec(`UPDATE "sales" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ClaimCompletion(context.Background(), sale)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormSaleRepository_AppendPayment(t *testing.T) {
	repo, mock, mockDB := newMockSaleRepository(t)
	defer mockDB.Close()

	payment, err := sales.NewPayment(uuid.New(), uuid.New(), sales.PaymentMethodCash, decimal.RequireFromString("232.00"), "")
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "payments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.AppendPayment(context.Background(), payment)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSaleRepository_Update(t *testing.T) {
	t.Run("updates status and notes", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		sale, err := sales.NewSale(uuid.New(), "V-00003", uuid.New(), sales.SaleTypePOS)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "sales" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Update(context.Background(), sale)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		sale, err := sales.NewSale(uuid.New(), "V-00003", uuid.New(), sales.SaleTypePOS)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "sales" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), sale)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
