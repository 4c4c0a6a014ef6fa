package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockLevelFilter represents filter options for the stock level list
type StockLevelFilter struct {
	WarehouseID  *uuid.UUID `form:"warehouse_id"`
	ProductID    *uuid.UUID `form:"product_id"`
	BelowMinimum bool       `form:"below_minimum"`
	Negative     bool       `form:"negative"`
	Page         int        `form:"page" binding:"min=0"`
	PageSize     int        `form:"page_size" binding:"min=0,max=100"`
}

// LedgerFilter represents filter options for ledger history queries
type LedgerFilter struct {
	Page     int `form:"page" binding:"min=0"`
	PageSize int `form:"page_size" binding:"min=0,max=200"`
}

// StockLevelResponse represents one balance row in API responses
type StockLevelResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	IsNegative  bool            `json:"is_negative"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LedgerEntryResponse represents one ledger row in API responses
type LedgerEntryResponse struct {
	ID               uuid.UUID       `json:"id"`
	InventoryItemID  uuid.UUID       `json:"inventory_item_id"`
	ProductID        uuid.UUID       `json:"product_id"`
	WarehouseID      uuid.UUID       `json:"warehouse_id"`
	MovementType     string          `json:"movement_type"`
	Quantity         decimal.Decimal `json:"quantity"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	SourceType       string          `json:"source_type"`
	SourceID         string          `json:"source_id"`
	Notes            string          `json:"notes,omitempty"`
	MovementDate     time.Time       `json:"movement_date"`
}

// ToStockLevelResponse maps a balance row to its projection
func ToStockLevelResponse(item *inventory.InventoryItem) StockLevelResponse {
	return StockLevelResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		WarehouseID: item.WarehouseID,
		Quantity:    item.Quantity,
		MinQuantity: item.MinQuantity,
		IsNegative:  item.Quantity.IsNegative(),
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToStockLevelResponses maps balance rows to their list projection
func ToStockLevelResponses(items []inventory.InventoryItem) []StockLevelResponse {
	responses := make([]StockLevelResponse, len(items))
	for i := range items {
		responses[i] = ToStockLevelResponse(&items[i])
	}
	return responses
}

// ToLedgerEntryResponses maps ledger rows to their projection
func ToLedgerEntryResponses(entries []inventory.InventoryTransaction) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		tx := &entries[i]
		responses[i] = LedgerEntryResponse{
			ID:               tx.ID,
			InventoryItemID:  tx.InventoryItemID,
			ProductID:        tx.ProductID,
			WarehouseID:      tx.WarehouseID,
			MovementType:     string(tx.MovementType),
			Quantity:         tx.Quantity,
			PreviousQuantity: tx.PreviousQuantity,
			NewQuantity:      tx.NewQuantity,
			SourceType:       string(tx.SourceType),
			SourceID:         tx.SourceID,
			Notes:            tx.Notes,
			MovementDate:     tx.MovementDate,
		}
	}
	return responses
}
