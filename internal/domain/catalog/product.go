package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a sellable product in the catalog.
// The sale pipeline consumes it read-only: lines snapshot name/sku and derive
// the tax percentage from TaxEnabled/TaxRate at creation time.
type Product struct {
	shared.TenantAggregateRoot
	SKU         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_sku,priority:2"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Barcode     string          `gorm:"type:varchar(50);index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	ListPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxEnabled  bool            `gorm:"not null;default:false"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"` // Percentage, e.g. 16 for 16%
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, sku, name string) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewValidationError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if len(sku) > 50 {
		return nil, shared.NewValidationError("INVALID_SKU", "Product SKU cannot exceed 50 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 strings.ToUpper(sku),
		Name:                name,
		ListPrice:           decimal.Zero,
		TaxRate:             decimal.Zero,
		Status:              ProductStatusActive,
	}, nil
}

// SetTax configures the tax flag and rate for the product
func (p *Product) SetTax(enabled bool, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewValidationError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	p.TaxEnabled = enabled
	p.TaxRate = rate
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// EffectiveTaxRate returns the tax percentage applied to sale lines:
// the configured rate when tax is enabled, zero otherwise.
func (p *Product) EffectiveTaxRate() decimal.Decimal {
	if !p.TaxEnabled {
		return decimal.Zero
	}
	return p.TaxRate
}

// IsActive returns true if the product can be sold
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
