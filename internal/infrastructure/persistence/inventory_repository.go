package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
)

// GormInventoryItemRepository implements inventory.InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByProductAndWarehouse finds the balance row for a product/warehouse pair
func (r *GormInventoryItemRepository) FindByProductAndWarehouse(ctx context.Context, tenantID, productID, warehouseID uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ? AND warehouse_id = ?", tenantID, productID, warehouseID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetOrCreate returns the balance row for a product/warehouse pair, lazily
// creating it at balance zero. ON CONFLICT converges concurrent first touches
// on one row.
func (r *GormInventoryItemRepository) GetOrCreate(ctx context.Context, tenantID, productID, warehouseID uuid.UUID) (*inventory.InventoryItem, error) {
	item, err := r.FindByProductAndWarehouse(ctx, tenantID, productID, warehouseID)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	item, err = inventory.NewInventoryItem(tenantID, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "product_id"}, {Name: "warehouse_id"}},
			DoNothing: true,
		}).
		Create(item).Error; err != nil {
		return nil, err
	}

	// If the row wasn't created (conflict), fetch the existing one
	if item.ID == uuid.Nil {
		return r.FindByProductAndWarehouse(ctx, tenantID, productID, warehouseID)
	}

	return item, nil
}

// ApplyDelta atomically shifts the balance by a signed delta and reports the
// balance before and after. The shift happens inside one UPDATE so concurrent
// completions never lose an increment, and negative balances are permitted.
func (r *GormInventoryItemRepository) ApplyDelta(ctx context.Context, tenantID, productID, warehouseID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, *inventory.InventoryItem, error) {
	if _, err := r.GetOrCreate(ctx, tenantID, productID, warehouseID); err != nil {
		return decimal.Zero, decimal.Zero, nil, err
	}

	var row struct {
		Previous decimal.Decimal
		Current  decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		UPDATE inventory_items
		SET quantity = quantity + ?, updated_at = NOW()
		WHERE tenant_id = ? AND product_id = ? AND warehouse_id = ?
		RETURNING quantity - ? AS previous, quantity AS current`,
		delta, tenantID, productID, warehouseID, delta).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, nil, err
	}

	item, err := r.FindByProductAndWarehouse(ctx, tenantID, productID, warehouseID)
	if err != nil {
		return decimal.Zero, decimal.Zero, nil, err
	}

	return row.Previous, row.Current, item, nil
}

// FindAllForTenant lists balance rows for a tenant with filtering
func (r *GormInventoryItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryItem{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a balance row
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// applyFilter applies filter options to the query
func (r *GormInventoryItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInventoryItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "below_minimum":
			if value == true {
				query = query.Where("min_quantity > 0 AND quantity < min_quantity")
			}
		case "negative":
			if value == true {
				query = query.Where("quantity < 0")
			}
		}
	}

	return query
}

// Ensure GormInventoryItemRepository implements InventoryItemRepository
var _ inventory.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
