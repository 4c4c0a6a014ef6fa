package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItem is the running stock balance for a (tenant, product, warehouse)
// pair. It is created lazily at balance zero the first time a sale touches the
// pair. The sale flow enforces no floor: the balance may go negative.
type InventoryItem struct {
	shared.TenantAggregateRoot
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_tenant_product_warehouse,priority:2"`
	WarehouseID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_tenant_product_warehouse,priority:3"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Current on-hand balance
	ReservedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Held by flows outside this subsystem
	MinQuantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Minimum stock threshold for alerts
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a zero-balance inventory item for a product-warehouse pair
func NewInventoryItem(tenantID, productID, warehouseID uuid.UUID) (*InventoryItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &InventoryItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		WarehouseID:         warehouseID,
		Quantity:            decimal.Zero,
		ReservedQuantity:    decimal.Zero,
		MinQuantity:         decimal.Zero,
	}, nil
}

// Apply shifts the balance by a signed delta and returns the movement
// boundaries (previous and new balance) for the ledger row. No floor is
// enforced: a sale against an empty balance drives it negative.
func (i *InventoryItem) Apply(delta decimal.Decimal) (previous, current decimal.Decimal) {
	previous = i.Quantity
	i.Quantity = i.Quantity.Add(delta)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return previous, i.Quantity
}

// SetMinQuantity sets the minimum stock threshold for alerts
func (i *InventoryItem) SetMinQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewValidationError("INVALID_QUANTITY", "Minimum quantity cannot be negative")
	}
	i.MinQuantity = quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsBelowMinimum returns true if the balance is below the alert threshold
func (i *InventoryItem) IsBelowMinimum() bool {
	return i.MinQuantity.GreaterThan(decimal.Zero) && i.Quantity.LessThan(i.MinQuantity)
}
