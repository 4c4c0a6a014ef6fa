package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItemRepository defines persistence for inventory balances.
type InventoryItemRepository interface {
	// FindByProductAndWarehouse finds the balance row for a pair
	FindByProductAndWarehouse(ctx context.Context, tenantID, productID, warehouseID uuid.UUID) (*InventoryItem, error)

	// GetOrCreate returns the balance row for a pair, lazily creating it at
	// balance zero. Concurrent first touches must converge on one row.
	GetOrCreate(ctx context.Context, tenantID, productID, warehouseID uuid.UUID) (*InventoryItem, error)

	// ApplyDelta atomically shifts the balance by a signed delta at the storage
	// layer and returns the item with the balance observed before and after the
	// shift. This is the only write path for balances: application code never
	// performs a read-modify-write of Quantity.
	ApplyDelta(ctx context.Context, tenantID, productID, warehouseID uuid.UUID, delta decimal.Decimal) (previous, current decimal.Decimal, item *InventoryItem, err error)

	// FindAllForTenant lists balance rows for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]InventoryItem, error)

	// Save creates or updates a balance row
	Save(ctx context.Context, item *InventoryItem) error
}

// InventoryTransactionRepository defines the append-only ledger store.
type InventoryTransactionRepository interface {
	// Append writes one ledger row. Rows are immutable once written.
	Append(ctx context.Context, tx *InventoryTransaction) error

	// FindByInventoryItem lists ledger rows for a balance row, newest first
	FindByInventoryItem(ctx context.Context, inventoryItemID uuid.UUID, filter shared.Filter) ([]InventoryTransaction, error)

	// FindBySource lists ledger rows produced by one source document
	FindBySource(ctx context.Context, sourceType SourceType, sourceID string) ([]InventoryTransaction, error)

	// FindLatestByInventoryItem returns the most recent ledger row for a
	// balance row, or shared.ErrNotFound when the ledger is empty.
	FindLatestByInventoryItem(ctx context.Context, inventoryItemID uuid.UUID) (*InventoryTransaction, error)
}
