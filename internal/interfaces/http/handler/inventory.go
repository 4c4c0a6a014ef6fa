package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/domain/inventory"
)

// InventoryHandler handles stock balance and ledger API endpoints
type InventoryHandler struct {
	BaseHandler
	queryService *inventoryapp.InventoryQueryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(queryService *inventoryapp.InventoryQueryService) *InventoryHandler {
	return &InventoryHandler{
		queryService: queryService,
	}
}

// ListStockLevels lists stock balances for the tenant
func (h *InventoryHandler) ListStockLevels(c *gin.Context) {
	var filter inventoryapp.StockLevelFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	levels, err := h.queryService.ListStockLevels(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, levels)
}

// GetStockLevel returns the balance for a product-warehouse pair
func (h *InventoryHandler) GetStockLevel(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	warehouseID, err := uuid.Parse(c.Param("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	level, err := h.queryService.GetStockLevel(c.Request.Context(), productID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, level)
}

// GetLedger returns the movement history for a product-warehouse pair
func (h *InventoryHandler) GetLedger(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	warehouseID, err := uuid.Parse(c.Param("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	var filter inventoryapp.LedgerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.queryService.GetLedger(c.Request.Context(), productID, warehouseID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// GetSaleMovements returns the ledger rows a completed sale produced
func (h *InventoryHandler) GetSaleMovements(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("sale_id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	entries, err := h.queryService.GetMovementsBySource(c.Request.Context(), inventory.SourceTypeSale, saleID.String())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.GET("/stock", h.ListStockLevels)
		inv.GET("/stock/:product_id/:warehouse_id", h.GetStockLevel)
		inv.GET("/stock/:product_id/:warehouse_id/ledger", h.GetLedger)
		inv.GET("/movements/sale/:sale_id", h.GetSaleMovements)
	}
}
