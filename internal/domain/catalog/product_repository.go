package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the read-only catalog access the sale pipelines need.
// Catalog maintenance (create/update/price tiers) lives outside this service.
type ProductRepository interface {
	// FindByIDForTenant finds a product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by SKU within a tenant
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)
}
