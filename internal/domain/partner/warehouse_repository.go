package partner

import (
	"context"

	"github.com/google/uuid"
)

// WarehouseRepository defines warehouse resolution for the sale pipelines.
type WarehouseRepository interface {
	// FindByIDForTenant finds a warehouse by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Warehouse, error)

	// FindDefault finds the tenant's default warehouse
	FindDefault(ctx context.Context, tenantID uuid.UUID) (*Warehouse, error)
}
