package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// SaleRepository defines persistence for the Sale aggregate
type SaleRepository interface {
	// FindByIDForTenant finds a sale with its items and payments within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)

	// FindByFolio finds a sale by folio within a tenant
	FindByFolio(ctx context.Context, tenantID uuid.UUID, folio string) (*Sale, error)

	// FindAllForTenant finds sales for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// CountForTenant counts sales for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a sale with its items in one commit
	Save(ctx context.Context, sale *Sale) error

	// NextFolioNumber atomically allocates the next folio sequence number for
	// a tenant. Concurrent allocations must return distinct numbers.
	NextFolioNumber(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// ClaimCompletion flips a DRAFT sale to COMPLETED with a single winner.
	// Returns shared.ErrConcurrencyConflict semantics (zero rows claimed) as a
	// conflict when the sale is no longer a draft.
	ClaimCompletion(ctx context.Context, sale *Sale) error

	// AppendPayment persists one payment row for a sale
	AppendPayment(ctx context.Context, payment *Payment) error

	// Update persists status/notes changes of an existing sale
	Update(ctx context.Context, sale *Sale) error
}
