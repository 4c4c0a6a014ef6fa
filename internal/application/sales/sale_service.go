package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/logger"
)

// SaleService runs the sale pipelines: draft creation from a cart, completion
// against received payments, and cancellation.
type SaleService struct {
	saleRepo      sales.SaleRepository
	productRepo   catalog.ProductRepository
	warehouseRepo partner.WarehouseRepository
	txScope       TransactionScope
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo sales.SaleRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo partner.WarehouseRepository,
	txScope TransactionScope,
) *SaleService {
	return &SaleService{
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		txScope:       txScope,
	}
}

// currentTenant resolves the tenant from the request context. Absence is an
// Unauthorized outcome, not an infrastructure failure.
func (s *SaleService) currentTenant(ctx context.Context) (uuid.UUID, error) {
	raw := logger.GetTenantID(ctx)
	if raw == "" {
		return uuid.Nil, sales.ErrTenantRequired
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, sales.ErrTenantRequired
	}
	return tenantID, nil
}

// resolveWarehouse returns the explicit warehouse when given, otherwise the
// tenant's default warehouse.
func (s *SaleService) resolveWarehouse(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) (*partner.Warehouse, error) {
	var (
		warehouse *partner.Warehouse
		err       error
	)
	if warehouseID != nil {
		warehouse, err = s.warehouseRepo.FindByIDForTenant(ctx, tenantID, *warehouseID)
	} else {
		warehouse, err = s.warehouseRepo.FindDefault(ctx, tenantID)
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, sales.ErrWarehouseNotFound
		}
		return nil, err
	}
	return warehouse, nil
}

// Create builds a draft sale from cart lines, snapshotting catalog data into
// the lines and allocating the next folio. No inventory is touched: stock is
// deliberately not reserved between creation and completion.
//
// Every cart line is validated against the catalog before the folio counter
// is bumped: the counter write is durable, so a cart that cannot be priced
// must fail before it.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*CreateSaleResponse, error) {
	tenantID, err := s.currentTenant(ctx)
	if err != nil {
		return nil, err
	}

	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("Sale.EmptyCart", "A sale needs at least one cart line")
	}

	warehouse, err := s.resolveWarehouse(ctx, tenantID, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, len(req.Items))
	for i, line := range req.Items {
		product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, sales.ErrProductNotFound
			}
			return nil, err
		}
		products[i] = product
	}

	folioNumber, err := s.saleRepo.NextFolioNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	sale, err := sales.NewSale(tenantID, sales.FormatFolio(folioNumber), warehouse.ID, req.Type)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		sale.SetCustomer(*req.CustomerID)
	}
	if req.Notes != "" {
		sale.SetNotes(req.Notes)
	}

	for i, line := range req.Items {
		if _, err := sale.AddItem(
			products[i].ID,
			products[i].Name,
			products[i].SKU,
			line.UnitPrice,
			line.Quantity,
			line.DiscountPercent,
			products[i].EffectiveTaxRate(),
		); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("folio", sale.Folio),
		zap.Int("items", len(sale.Items)))

	return &CreateSaleResponse{ID: sale.ID, Folio: sale.Folio}, nil
}

// Complete confirms a draft sale against the received payments. Inside one
// commit it deducts stock through the ledger for every line, records the
// payments, and flips the sale to COMPLETED. Preconditions (existence, draft
// status, payment coverage) are checked before anything is staged.
func (s *SaleService) Complete(ctx context.Context, saleID uuid.UUID, req CompleteSaleRequest) (*SaleResponse, error) {
	tenantID, err := s.currentTenant(ctx)
	if err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, sales.ErrSaleNotFound
		}
		return nil, err
	}

	for _, p := range req.Payments {
		if _, err := sale.AddPayment(p.Method, p.Amount, p.Reference); err != nil {
			return nil, err
		}
	}
	if err := sale.Complete(); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Claim the draft first: concurrent completions race on the status
		// column and exactly one wins.
		if err := repos.SaleRepo().ClaimCompletion(ctx, sale); err != nil {
			return err
		}

		for i := range sale.Items {
			item := &sale.Items[i]
			delta := item.Quantity.Neg()

			previous, current, invItem, err := repos.InventoryRepo().ApplyDelta(
				ctx, tenantID, item.ProductID, sale.WarehouseID, delta)
			if err != nil {
				return err
			}

			movement, err := inventory.NewSaleMovement(invItem, delta, previous, current, sale.ID)
			if err != nil {
				return err
			}
			if err := repos.LedgerRepo().Append(ctx, movement.WithNotes("Sale "+sale.Folio)); err != nil {
				return err
			}
		}

		for i := range sale.Payments {
			if err := repos.SaleRepo().AppendPayment(ctx, &sale.Payments[i]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("sale completed",
		zap.String("sale_id", sale.ID.String()),
		zap.String("folio", sale.Folio),
		zap.String("total", sale.Total.StringFixed(2)),
		zap.String("paid", sale.PaymentTotal().StringFixed(2)))

	response := ToSaleResponse(sale)
	return &response, nil
}

// Cancel flips a draft sale to CANCELLED. Draft sales never touched inventory,
// so cancellation has no inventory or payment effect.
func (s *SaleService) Cancel(ctx context.Context, saleID uuid.UUID, req CancelSaleRequest) (bool, error) {
	tenantID, err := s.currentTenant(ctx)
	if err != nil {
		return false, err
	}

	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, sales.ErrSaleNotFound
		}
		return false, err
	}

	if err := sale.Cancel(req.Reason); err != nil {
		return false, err
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return false, err
	}

	logger.FromContext(ctx).Info("sale cancelled",
		zap.String("sale_id", sale.ID.String()),
		zap.String("folio", sale.Folio))

	return true, nil
}

// GetByID retrieves a sale projection with items and payments
func (s *SaleService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	tenantID, err := s.currentTenant(ctx)
	if err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, sales.ErrSaleNotFound
		}
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves a page of sales for the current tenant with filtering
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) (*shared.Paginated[SaleListItemResponse], error) {
	tenantID, err := s.currentTenant(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.WarehouseID != nil {
		domainFilter.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	items, err := s.saleRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToSaleListItemResponses(items), total, filter.Page, filter.PageSize)
	return &page, nil
}
