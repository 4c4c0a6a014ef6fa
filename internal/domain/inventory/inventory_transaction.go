package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementType represents the type of inventory movement
type MovementType string

const (
	// MovementTypeSale is the only movement this subsystem produces
	MovementTypeSale       MovementType = "SALE"
	MovementTypePurchase   MovementType = "PURCHASE"
	MovementTypeTransfer   MovementType = "TRANSFER"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
	MovementTypeReturn     MovementType = "RETURN"
	MovementTypeDamage     MovementType = "DAMAGE"
	MovementTypeLoss       MovementType = "LOSS"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeSale, MovementTypePurchase, MovementTypeTransfer,
		MovementTypeAdjustment, MovementTypeReturn, MovementTypeDamage, MovementTypeLoss:
		return true
	}
	return false
}

// SourceType identifies the document that originated a movement
type SourceType string

const (
	SourceTypeSale             SourceType = "SALE"
	SourceTypePurchaseOrder    SourceType = "PURCHASE_ORDER"
	SourceTypeManualAdjustment SourceType = "MANUAL_ADJUSTMENT"
)

// InventoryTransaction is one append-only ledger row. The ledger is the source
// of truth for historical stock movement: rows are never modified, corrections
// are new rows. Quantity is a signed delta and NewQuantity must equal
// PreviousQuantity + Quantity.
type InventoryTransaction struct {
	shared.BaseEntity
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_inv_tx_tenant_time,priority:1"`
	InventoryItemID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovementType     MovementType    `gorm:"type:varchar(20);not null;index"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Signed delta
	PreviousQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NewQuantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SourceType       SourceType      `gorm:"type:varchar(30);not null;index:idx_inv_tx_source,priority:1"`
	SourceID         string          `gorm:"type:varchar(50);not null;index:idx_inv_tx_source,priority:2"`
	Notes            string          `gorm:"type:varchar(255)"`
	MovementDate     time.Time       `gorm:"type:timestamptz;not null;index:idx_inv_tx_tenant_time,priority:2"`
}

// TableName returns the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// NewInventoryTransaction creates a ledger row for a stock movement
func NewInventoryTransaction(
	tenantID, inventoryItemID, productID, warehouseID uuid.UUID,
	movementType MovementType,
	quantity, previousQuantity, newQuantity decimal.Decimal,
	sourceType SourceType,
	sourceID string,
) (*InventoryTransaction, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if inventoryItemID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_INVENTORY_ITEM", "Inventory item ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewValidationError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}
	if quantity.IsZero() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	if !newQuantity.Equal(previousQuantity.Add(quantity)) {
		return nil, shared.NewValidationError("LEDGER_MISMATCH", "New quantity must equal previous quantity plus delta")
	}
	if sourceID == "" {
		return nil, shared.NewValidationError("INVALID_SOURCE_ID", "Source ID cannot be empty")
	}

	return &InventoryTransaction{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		InventoryItemID:  inventoryItemID,
		ProductID:        productID,
		WarehouseID:      warehouseID,
		MovementType:     movementType,
		Quantity:         quantity,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		SourceType:       sourceType,
		SourceID:         sourceID,
		MovementDate:     time.Now(),
	}, nil
}

// NewSaleMovement builds the outbound ledger row a sale completion appends:
// a negative delta referencing the sale document.
func NewSaleMovement(item *InventoryItem, quantity, previous, current decimal.Decimal, saleID uuid.UUID) (*InventoryTransaction, error) {
	return NewInventoryTransaction(
		item.TenantID,
		item.ID,
		item.ProductID,
		item.WarehouseID,
		MovementTypeSale,
		quantity,
		previous,
		current,
		SourceTypeSale,
		saleID.String(),
	)
}

// WithNotes sets the free-text note for the movement
func (t *InventoryTransaction) WithNotes(notes string) *InventoryTransaction {
	t.Notes = notes
	return t
}

// IsOutbound returns true if the movement decreases stock
func (t *InventoryTransaction) IsOutbound() bool {
	return t.Quantity.IsNegative()
}
