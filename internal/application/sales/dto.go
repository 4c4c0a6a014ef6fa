package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// CartLineInput is one cart line feeding sale creation
type CartLineInput struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CreateSaleRequest represents a request to create a draft sale from a cart
type CreateSaleRequest struct {
	CustomerID  *uuid.UUID      `json:"customer_id"`
	WarehouseID *uuid.UUID      `json:"warehouse_id"`
	Type        sales.SaleType  `json:"type"`
	Notes       string          `json:"notes"`
	Items       []CartLineInput `json:"items" binding:"required,min=1"`
}

// PaymentInput is one tender in a completion request
type PaymentInput struct {
	Method    sales.PaymentMethod `json:"method" binding:"required"`
	Amount    decimal.Decimal     `json:"amount" binding:"required"`
	Reference string              `json:"reference"`
}

// CompleteSaleRequest represents a request to complete a draft sale
type CompleteSaleRequest struct {
	Payments []PaymentInput `json:"payments" binding:"required,min=1"`
}

// CancelSaleRequest represents a request to cancel a draft sale
type CancelSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Status      *sales.SaleStatus `form:"status"`
	CustomerID  *uuid.UUID        `form:"customer_id"`
	WarehouseID *uuid.UUID        `form:"warehouse_id"`
	StartDate   *time.Time        `form:"start_date"`
	EndDate     *time.Time        `form:"end_date"`
	Search      string            `form:"search"`
	Page        int               `form:"page" binding:"min=0"`
	PageSize    int               `form:"page_size" binding:"min=0,max=100"`
	OrderBy     string            `form:"order_by"`
	OrderDir    string            `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateSaleResponse carries the identifiers of a newly created draft sale
type CreateSaleResponse struct {
	ID    uuid.UUID `json:"id"`
	Folio string    `json:"folio"`
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductSKU      string          `json:"product_sku"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        decimal.Decimal `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	Status    string          `json:"status"`
}

// SaleResponse represents a full sale projection with items and payments
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	Folio         string             `json:"folio"`
	Type          string             `json:"type"`
	Status        string             `json:"status"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	WarehouseID   uuid.UUID          `json:"warehouse_id"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountTotal decimal.Decimal    `json:"discount_total"`
	TaxTotal      decimal.Decimal    `json:"tax_total"`
	Total         decimal.Decimal    `json:"total"`
	Notes         string             `json:"notes,omitempty"`
	ChangeDue     decimal.Decimal    `json:"change_due"`
	Items         []SaleItemResponse `json:"items"`
	Payments      []PaymentResponse  `json:"payments"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListItemResponse is the compact projection used by list endpoints
type SaleListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Folio       string          `json:"folio"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToSaleResponse maps a sale aggregate to its full projection
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductSKU:      item.ProductSKU,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			DiscountPercent: item.DiscountPercent,
			TaxPercent:      item.TaxPercent,
			LineTotal:       item.LineTotal,
		}
	}

	payments := make([]PaymentResponse, len(sale.Payments))
	for i, p := range sale.Payments {
		payments[i] = PaymentResponse{
			ID:        p.ID,
			Method:    string(p.Method),
			Amount:    p.Amount,
			Reference: p.Reference,
			Status:    string(p.Status),
		}
	}

	return SaleResponse{
		ID:            sale.ID,
		Folio:         sale.Folio,
		Type:          string(sale.Type),
		Status:        string(sale.Status),
		CustomerID:    sale.CustomerID,
		WarehouseID:   sale.WarehouseID,
		Subtotal:      sale.Subtotal,
		DiscountTotal: sale.DiscountTotal,
		TaxTotal:      sale.TaxTotal,
		Total:         sale.Total,
		Notes:         sale.Notes,
		ChangeDue:     sale.ChangeDue().Amount(),
		Items:         items,
		Payments:      payments,
		CompletedAt:   sale.CompletedAt,
		CreatedAt:     sale.CreatedAt,
	}
}

// ToSaleListItemResponses maps sales to the compact list projection
func ToSaleListItemResponses(items []sales.Sale) []SaleListItemResponse {
	responses := make([]SaleListItemResponse, len(items))
	for i := range items {
		responses[i] = SaleListItemResponse{
			ID:          items[i].ID,
			Folio:       items[i].Folio,
			Type:        string(items[i].Type),
			Status:      string(items[i].Status),
			WarehouseID: items[i].WarehouseID,
			Total:       items[i].Total,
			ItemCount:   len(items[i].Items),
			CreatedAt:   items[i].CreatedAt,
		}
	}
	return responses
}
