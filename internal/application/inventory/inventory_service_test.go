package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/logger"
)

// MockInventoryItemRepository implements inventory.InventoryItemRepository
type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) FindByProductAndWarehouse(ctx context.Context, tenantID, productID, warehouseID uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) GetOrCreate(ctx context.Context, tenantID, productID, warehouseID uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) ApplyDelta(ctx context.Context, tenantID, productID, warehouseID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, *inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, productID, warehouseID, delta)
	var item *inventory.InventoryItem
	if args.Get(2) != nil {
		item = args.Get(2).(*inventory.InventoryItem)
	}
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), item, args.Error(3)
}

func (m *MockInventoryItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockInventoryTransactionRepository implements inventory.InventoryTransactionRepository
type MockInventoryTransactionRepository struct {
	mock.Mock
}

func (m *MockInventoryTransactionRepository) Append(ctx context.Context, tx *inventory.InventoryTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInventoryTransactionRepository) FindByInventoryItem(ctx context.Context, inventoryItemID uuid.UUID, filter shared.Filter) ([]inventory.InventoryTransaction, error) {
	args := m.Called(ctx, inventoryItemID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryTransaction), args.Error(1)
}

func (m *MockInventoryTransactionRepository) FindBySource(ctx context.Context, sourceType inventory.SourceType, sourceID string) ([]inventory.InventoryTransaction, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryTransaction), args.Error(1)
}

func (m *MockInventoryTransactionRepository) FindLatestByInventoryItem(ctx context.Context, inventoryItemID uuid.UUID) (*inventory.InventoryTransaction, error) {
	args := m.Called(ctx, inventoryItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryTransaction), args.Error(1)
}

func newQueryFixture(t *testing.T) (context.Context, uuid.UUID, *MockInventoryItemRepository, *MockInventoryTransactionRepository, *InventoryQueryService) {
	t.Helper()
	tenantID := uuid.New()
	ctx, _ := logger.WithTenantID(context.Background(), zap.NewNop(), tenantID.String())
	itemRepo := new(MockInventoryItemRepository)
	ledgerRepo := new(MockInventoryTransactionRepository)
	service := NewInventoryQueryService(itemRepo, ledgerRepo)
	return ctx, tenantID, itemRepo, ledgerRepo, service
}

func TestInventoryQueryService_GetStockLevel(t *testing.T) {
	t.Run("should return balance row", func(t *testing.T) {
		ctx, tenantID, itemRepo, _, service := newQueryFixture(t)
		productID := uuid.New()
		warehouseID := uuid.New()

		item, err := inventory.NewInventoryItem(tenantID, productID, warehouseID)
		assert.NoError(t, err)
		item.Quantity = decimal.NewFromInt(-3)

		itemRepo.On("FindByProductAndWarehouse", mock.Anything, tenantID, productID, warehouseID).
			Return(item, nil)

		resp, err := service.GetStockLevel(ctx, productID, warehouseID)
		assert.NoError(t, err)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(-3)))
		assert.True(t, resp.IsNegative)
		itemRepo.AssertExpectations(t)
	})

	t.Run("should return not found for untouched pair", func(t *testing.T) {
		ctx, tenantID, itemRepo, _, service := newQueryFixture(t)
		productID := uuid.New()
		warehouseID := uuid.New()

		itemRepo.On("FindByProductAndWarehouse", mock.Anything, tenantID, productID, warehouseID).
			Return(nil, shared.ErrNotFound)

		resp, err := service.GetStockLevel(ctx, productID, warehouseID)
		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "Inventory.NotFound", domainErr.Code)
	})

	t.Run("should reject request without tenant", func(t *testing.T) {
		_, _, _, _, service := newQueryFixture(t)

		_, err := service.GetStockLevel(context.Background(), uuid.New(), uuid.New())
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.KindUnauthorized, domainErr.Kind)
	})
}

func TestInventoryQueryService_ListStockLevels(t *testing.T) {
	ctx, tenantID, itemRepo, _, service := newQueryFixture(t)
	warehouseID := uuid.New()

	itemA, _ := inventory.NewInventoryItem(tenantID, uuid.New(), warehouseID)
	itemA.Quantity = decimal.NewFromInt(5)
	itemB, _ := inventory.NewInventoryItem(tenantID, uuid.New(), warehouseID)
	itemB.Quantity = decimal.NewFromInt(-2)

	itemRepo.On("FindAllForTenant", mock.Anything, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Filters["warehouse_id"] == warehouseID
	})).Return([]inventory.InventoryItem{*itemA, *itemB}, nil)

	resp, err := service.ListStockLevels(ctx, StockLevelFilter{WarehouseID: &warehouseID})
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.False(t, resp[0].IsNegative)
	assert.True(t, resp[1].IsNegative)
	itemRepo.AssertExpectations(t)
}

func TestInventoryQueryService_GetLedger(t *testing.T) {
	ctx, tenantID, itemRepo, ledgerRepo, service := newQueryFixture(t)
	productID := uuid.New()
	warehouseID := uuid.New()

	item, _ := inventory.NewInventoryItem(tenantID, productID, warehouseID)
	item.Quantity = decimal.NewFromInt(8)

	movement, err := inventory.NewSaleMovement(item, decimal.NewFromInt(-2), decimal.NewFromInt(10), decimal.NewFromInt(8), uuid.New())
	assert.NoError(t, err)

	itemRepo.On("FindByProductAndWarehouse", mock.Anything, tenantID, productID, warehouseID).
		Return(item, nil)
	ledgerRepo.On("FindByInventoryItem", mock.Anything, item.ID, mock.Anything).
		Return([]inventory.InventoryTransaction{*movement}, nil)

	entries, err := service.GetLedger(ctx, productID, warehouseID, LedgerFilter{})
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, string(inventory.MovementTypeSale), entries[0].MovementType)
	assert.True(t, entries[0].PreviousQuantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, entries[0].NewQuantity.Equal(decimal.NewFromInt(8)))
}

func TestInventoryQueryService_GetMovementsBySource(t *testing.T) {
	ctx, tenantID, _, ledgerRepo, service := newQueryFixture(t)
	saleID := uuid.New()

	mine, _ := inventory.NewInventoryItem(tenantID, uuid.New(), uuid.New())
	myMovement, _ := inventory.NewSaleMovement(mine, decimal.NewFromInt(-1), decimal.NewFromInt(1), decimal.Zero, saleID)

	other, _ := inventory.NewInventoryItem(uuid.New(), uuid.New(), uuid.New())
	otherMovement, _ := inventory.NewSaleMovement(other, decimal.NewFromInt(-1), decimal.NewFromInt(4), decimal.NewFromInt(3), saleID)

	ledgerRepo.On("FindBySource", mock.Anything, inventory.SourceTypeSale, saleID.String()).
		Return([]inventory.InventoryTransaction{*myMovement, *otherMovement}, nil)

	entries, err := service.GetMovementsBySource(ctx, inventory.SourceTypeSale, saleID.String())
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, saleID.String(), entries[0].SourceID)
}
