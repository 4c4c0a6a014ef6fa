package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// WarehouseStatus represents the status of a warehouse
type WarehouseStatus string

const (
	WarehouseStatusActive   WarehouseStatus = "active"
	WarehouseStatusInactive WarehouseStatus = "inactive"
)

// Warehouse represents a stock location. Each tenant designates at most one
// default warehouse, which sales fall back to when no explicit warehouse is given.
type Warehouse struct {
	shared.TenantAggregateRoot
	Code      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_warehouse_tenant_code,priority:2"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Address   string          `gorm:"type:text"`
	IsDefault bool            `gorm:"not null;default:false"`
	Status    WarehouseStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse with required fields
func NewWarehouse(tenantID uuid.UUID, code, name string) (*Warehouse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE_CODE", "Warehouse code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE_CODE", "Warehouse code cannot exceed 50 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE_NAME", "Warehouse name cannot be empty")
	}

	return &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              WarehouseStatusActive,
	}, nil
}

// SetDefault marks this warehouse as the tenant's default
func (w *Warehouse) SetDefault(isDefault bool) {
	w.IsDefault = isDefault
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// IsActive returns true if the warehouse can receive movements
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActive
}
