package sales

import (
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// Coded errors returned by the sale pipelines. The presentation layer maps
// their kinds to transport status codes.
var (
	ErrSaleNotFound      = shared.NewNotFoundError("Sale.NotFound", "Sale not found")
	ErrProductNotFound   = shared.NewNotFoundError("Product.NotFound", "Product not found")
	ErrWarehouseNotFound = shared.NewNotFoundError("Warehouse.NotFound", "Warehouse not found")
	ErrTenantRequired    = shared.NewUnauthorizedError("Tenant.Unauthorized", "No tenant resolved for this request")
)

// ErrPaymentShort builds the validation error for insufficient payment coverage
func ErrPaymentShort(total, paid valueobject.Money) *shared.DomainError {
	return shared.NewValidationError(
		"Sale.PaymentShort",
		fmt.Sprintf("Payments of %s do not cover the sale total of %s", paid, total),
	)
}
