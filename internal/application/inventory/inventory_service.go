package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/logger"
)

// ErrStockItemNotFound is returned when no balance row exists for a pair
var ErrStockItemNotFound = shared.NewNotFoundError("Inventory.NotFound", "No stock record for this product and warehouse")

// ErrTenantRequired is returned when no tenant is resolved for the request
var ErrTenantRequired = shared.NewUnauthorizedError("Tenant.Unauthorized", "No tenant resolved for this request")

// InventoryQueryService serves read access to stock balances and the
// movement ledger. All writes go through the sale completion pipeline.
type InventoryQueryService struct {
	itemRepo   inventory.InventoryItemRepository
	ledgerRepo inventory.InventoryTransactionRepository
}

// NewInventoryQueryService creates a new InventoryQueryService
func NewInventoryQueryService(
	itemRepo inventory.InventoryItemRepository,
	ledgerRepo inventory.InventoryTransactionRepository,
) *InventoryQueryService {
	return &InventoryQueryService{
		itemRepo:   itemRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *InventoryQueryService) currentTenant(ctx context.Context) (uuid.UUID, error) {
	raw := logger.GetTenantID(ctx)
	if raw == "" {
		return uuid.Nil, ErrTenantRequired
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrTenantRequired
	}
	return tenantID, nil
}

// GetStockLevel returns the balance row for a product-warehouse pair. A pair
// the ledger has never touched has no row and reads as not found, which
// callers should treat as a balance of zero.
func (s *InventoryQueryService) GetStockLevel(ctx context.Context, productID, warehouseID uuid.UUID) (*StockLevelResponse, error) {
	tenantID, err := s.currentTenant(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindByProductAndWarehouse(ctx, tenantID, productID, warehouseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrStockItemNotFound
		}
		return nil, err
	}

	resp := ToStockLevelResponse(item)
	return &resp, nil
}

// ListStockLevels lists balance rows for the tenant with optional filtering
func (s *InventoryQueryService) ListStockLevels(ctx context.Context, filter StockLevelFilter) ([]StockLevelResponse, error) {
	tenantID, err := s.currentTenant(ctx)
	if err != nil {
		return nil, err
	}

	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Filters = map[string]interface{}{}
	if filter.WarehouseID != nil {
		repoFilter.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.ProductID != nil {
		repoFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.BelowMinimum {
		repoFilter.Filters["below_minimum"] = true
	}
	if filter.Negative {
		repoFilter.Filters["negative"] = true
	}

	items, err := s.itemRepo.FindAllForTenant(ctx, tenantID, repoFilter)
	if err != nil {
		return nil, err
	}
	return ToStockLevelResponses(items), nil
}

// GetLedger returns the movement history for a product-warehouse pair,
// newest first.
func (s *InventoryQueryService) GetLedger(ctx context.Context, productID, warehouseID uuid.UUID, filter LedgerFilter) ([]LedgerEntryResponse, error) {
	tenantID, err := s.currentTenant(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindByProductAndWarehouse(ctx, tenantID, productID, warehouseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrStockItemNotFound
		}
		return nil, err
	}

	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}

	entries, err := s.ledgerRepo.FindByInventoryItem(ctx, item.ID, repoFilter)
	if err != nil {
		return nil, err
	}
	return ToLedgerEntryResponses(entries), nil
}

// GetMovementsBySource returns the ledger rows a single source document
// produced, oldest first. Used to audit what a completed sale deducted.
func (s *InventoryQueryService) GetMovementsBySource(ctx context.Context, sourceType inventory.SourceType, sourceID string) ([]LedgerEntryResponse, error) {
	tenantID, err := s.currentTenant(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindBySource(ctx, sourceType, sourceID)
	if err != nil {
		return nil, err
	}

	// The source index is not tenant-scoped; drop rows from other tenants.
	scoped := entries[:0]
	for _, e := range entries {
		if e.TenantID == tenantID {
			scoped = append(scoped, e)
		}
	}
	return ToLedgerEntryResponses(scoped), nil
}
