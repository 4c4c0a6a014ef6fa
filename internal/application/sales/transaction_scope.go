package sales

import (
	"context"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/sales"
)

// TransactionScope provides the atomic commit boundary for sale completion.
// Everything executed inside one scope commits or rolls back together: the
// ledger rows, the payment rows, and the status flip are never observed
// partially applied.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repository access within a transaction.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() sales.SaleRepository
	// InventoryRepo returns the inventory balance repository scoped to the current transaction
	InventoryRepo() inventory.InventoryItemRepository
	// LedgerRepo returns the inventory ledger repository scoped to the current transaction
	LedgerRepo() inventory.InventoryTransactionRepository
}

// NoOpTransactionScope executes the function without a real transaction.
// Useful in tests where atomicity is exercised elsewhere.
type NoOpTransactionScope struct {
	saleRepo      sales.SaleRepository
	inventoryRepo inventory.InventoryItemRepository
	ledgerRepo    inventory.InventoryTransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	saleRepo sales.SaleRepository,
	inventoryRepo inventory.InventoryItemRepository,
	ledgerRepo inventory.InventoryTransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
		ledgerRepo:    ledgerRepo,
	}
}

// Execute runs the function without transaction semantics
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository {
	return s.saleRepo
}

// InventoryRepo returns the inventory balance repository
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryItemRepository {
	return s.inventoryRepo
}

// LedgerRepo returns the inventory ledger repository
func (s *NoOpTransactionScope) LedgerRepo() inventory.InventoryTransactionRepository {
	return s.ledgerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
