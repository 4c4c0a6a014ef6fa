package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "DRAFT"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusDraft, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// DRAFT is the only non-terminal state; COMPLETED and CANCELLED are final.
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusDraft:
		return target == SaleStatusCompleted || target == SaleStatusCancelled
	case SaleStatusCompleted, SaleStatusCancelled:
		return false
	}
	return false
}

// SaleType represents the sale channel
type SaleType string

const (
	SaleTypePOS    SaleType = "POS"
	SaleTypeOnline SaleType = "ONLINE"
	SaleTypePhone  SaleType = "PHONE"
)

// IsValid checks if the type is a valid SaleType
func (t SaleType) IsValid() bool {
	switch t {
	case SaleTypePOS, SaleTypeOnline, SaleTypePhone:
		return true
	}
	return false
}

// FormatFolio formats a sequential folio number as the human-readable
// sale identifier, e.g. 1 -> "V-00001".
func FormatFolio(n int64) string {
	return fmt.Sprintf("V-%05d", n)
}

// SaleItem is a frozen snapshot of a sold product line. Name and SKU are
// copied from the catalog so later catalog edits never change a recorded sale.
type SaleItem struct {
	shared.BaseEntity
	SaleID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	ProductSKU      string          `gorm:"type:varchar(50);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem creates a sale line and computes its money breakdown:
// base = unitPrice*quantity, net = base - base*discount/100,
// tax = net*taxPercent/100, lineTotal = round(net+tax, 2).
func NewSaleItem(saleID, productID uuid.UUID, productName, productSKU string, unitPrice, quantity, discountPercent, taxPercent decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewValidationError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewValidationError("INVALID_DISCOUNT", "Discount percentage must be between 0 and 100")
	}
	if taxPercent.IsNegative() || taxPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewValidationError("INVALID_TAX_RATE", "Tax percentage must be between 0 and 100")
	}

	net := lineNet(unitPrice, quantity, discountPercent)
	total := net.Add(lineTax(net, taxPercent)).Round(2)

	return &SaleItem{
		BaseEntity:      shared.NewBaseEntity(),
		SaleID:          saleID,
		ProductID:       productID,
		ProductName:     productName,
		ProductSKU:      productSKU,
		UnitPrice:       unitPrice,
		Quantity:        quantity,
		DiscountPercent: discountPercent,
		TaxPercent:      taxPercent,
		LineTotal:       total,
	}, nil
}

// DiscountAmount returns the absolute discount on this line
func (i *SaleItem) DiscountAmount() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity).Mul(i.DiscountPercent).Div(decimal.NewFromInt(100))
}

// NetAmount returns the line amount after discount, before tax
func (i *SaleItem) NetAmount() decimal.Decimal {
	return lineNet(i.UnitPrice, i.Quantity, i.DiscountPercent)
}

// TaxAmount returns the tax charged on this line
func (i *SaleItem) TaxAmount() decimal.Decimal {
	return lineTax(i.NetAmount(), i.TaxPercent)
}

func lineNet(unitPrice, quantity, discountPercent decimal.Decimal) decimal.Decimal {
	base := unitPrice.Mul(quantity)
	return base.Sub(base.Mul(discountPercent).Div(decimal.NewFromInt(100)))
}

func lineTax(net, taxPercent decimal.Decimal) decimal.Decimal {
	return net.Mul(taxPercent).Div(decimal.NewFromInt(100))
}

// Sale is the aggregate root for a retail sale. It owns its line items and
// payments and enforces the DRAFT -> COMPLETED | CANCELLED state machine.
type Sale struct {
	shared.TenantAggregateRoot
	Folio         string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_sale_tenant_folio,priority:2"`
	Type          SaleType        `gorm:"type:varchar(20);not null;default:'POS'"`
	Status        SaleStatus      `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxTotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes         string          `gorm:"type:text"`
	CompletedAt   *time.Time
	Items         []SaleItem `gorm:"foreignKey:SaleID;references:ID"`
	Payments      []Payment  `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new draft sale
func NewSale(tenantID uuid.UUID, folio string, warehouseID uuid.UUID, saleType SaleType) (*Sale, error) {
	if folio == "" {
		return nil, shared.NewValidationError("INVALID_FOLIO", "Folio cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if saleType == "" {
		saleType = SaleTypePOS
	}
	if !saleType.IsValid() {
		return nil, shared.NewValidationError("INVALID_SALE_TYPE", fmt.Sprintf("Unknown sale type %q", saleType))
	}

	return &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Folio:               folio,
		Type:                saleType,
		Status:              SaleStatusDraft,
		WarehouseID:         warehouseID,
		Subtotal:            decimal.Zero,
		DiscountTotal:       decimal.Zero,
		TaxTotal:            decimal.Zero,
		Total:               decimal.Zero,
		Items:               make([]SaleItem, 0),
		Payments:            make([]Payment, 0),
	}, nil
}

// SetCustomer associates an optional customer reference
func (s *Sale) SetCustomer(customerID uuid.UUID) {
	s.CustomerID = &customerID
	s.UpdatedAt = time.Now()
}

// SetNotes sets the free-text notes
func (s *Sale) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
}

// AddItem appends a snapshotted line to a draft sale and recalculates totals
func (s *Sale) AddItem(productID uuid.UUID, productName, productSKU string, unitPrice, quantity, discountPercent, taxPercent decimal.Decimal) (*SaleItem, error) {
	if s.Status != SaleStatusDraft {
		return nil, s.invalidStatusError()
	}

	item, err := NewSaleItem(s.ID, productID, productName, productSKU, unitPrice, quantity, discountPercent, taxPercent)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return item, nil
}

// AddPayment records a tender against the sale. Payments are only accepted
// while the sale is still a draft being completed.
func (s *Sale) AddPayment(method PaymentMethod, amount decimal.Decimal, reference string) (*Payment, error) {
	if s.Status != SaleStatusDraft {
		return nil, s.invalidStatusError()
	}

	payment, err := NewPayment(s.TenantID, s.ID, method, amount, reference)
	if err != nil {
		return nil, err
	}

	s.Payments = append(s.Payments, *payment)
	s.UpdatedAt = time.Now()

	return payment, nil
}

// PaymentTotal returns the sum of all recorded payment amounts
func (s *Sale) PaymentTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// TotalDue returns the sale total as Money in the tenant currency
func (s *Sale) TotalDue() valueobject.Money {
	return valueobject.NewMoneyMXN(s.Total)
}

// TenderedTotal returns the recorded payments as Money in the tenant currency
func (s *Sale) TenderedTotal() valueobject.Money {
	return valueobject.NewMoneyMXN(s.PaymentTotal())
}

// ChangeDue returns the overpayment to hand back to the customer. Zero when
// payments cover the total exactly or fall short.
func (s *Sale) ChangeDue() valueobject.Money {
	tendered := s.TenderedTotal()
	due := s.TotalDue()
	if !tendered.GreaterThanOrEqual(due) {
		return valueobject.ZeroMXN()
	}
	change, err := tendered.Sub(due)
	if err != nil {
		return valueobject.ZeroMXN()
	}
	return change
}

// Complete flips the sale to COMPLETED. Requires DRAFT status and full payment
// coverage; overpayment is accepted with no further effect.
func (s *Sale) Complete() error {
	if s.Status != SaleStatusDraft {
		return s.invalidStatusError()
	}
	if len(s.Items) == 0 {
		return shared.NewValidationError("Sale.NoItems", "Cannot complete a sale without items")
	}
	if s.TenderedTotal().LessThan(s.TotalDue()) {
		return ErrPaymentShort(s.TotalDue(), s.TenderedTotal())
	}

	now := time.Now()
	s.Status = SaleStatusCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now

	return nil
}

// Cancel flips the sale to CANCELLED. Completed sales are never reversed by
// this operation; a cancelled sale cannot be cancelled again.
func (s *Sale) Cancel(reason string) error {
	switch s.Status {
	case SaleStatusCancelled:
		return shared.NewConflictError("Sale.AlreadyCancelled", "Sale is already cancelled")
	case SaleStatusCompleted:
		return shared.NewConflictError("Sale.CannotCancelCompleted", "A completed sale cannot be cancelled")
	}

	s.Status = SaleStatusCancelled
	if reason = strings.TrimSpace(reason); reason != "" {
		cancelled := "Cancelled: " + reason
		if s.Notes == "" {
			s.Notes = cancelled
		} else {
			s.Notes = s.Notes + "\n" + cancelled
		}
	}
	s.UpdatedAt = time.Now()

	return nil
}

// recalculateTotals recomputes the money totals from the line items.
// Subtotal accumulates net line amounts, so Total = Subtotal + TaxTotal holds
// by construction.
func (s *Sale) recalculateTotals() {
	subtotal := decimal.Zero
	discount := decimal.Zero
	tax := decimal.Zero
	for i := range s.Items {
		subtotal = subtotal.Add(s.Items[i].NetAmount())
		discount = discount.Add(s.Items[i].DiscountAmount())
		tax = tax.Add(s.Items[i].TaxAmount())
	}
	s.Subtotal = subtotal.Round(2)
	s.DiscountTotal = discount.Round(2)
	s.TaxTotal = tax.Round(2)
	s.Total = s.Subtotal.Add(s.TaxTotal)
}

func (s *Sale) invalidStatusError() *shared.DomainError {
	return shared.NewConflictError("Sale.InvalidStatus", fmt.Sprintf("Sale is already %s", s.Status))
}

// IsDraft returns true if the sale is still a draft
func (s *Sale) IsDraft() bool {
	return s.Status == SaleStatusDraft
}

// IsCompleted returns true if the sale is completed
func (s *Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}

// IsCancelled returns true if the sale is cancelled
func (s *Sale) IsCancelled() bool {
	return s.Status == SaleStatusCancelled
}

// IsTerminal returns true if the sale is in a final state
func (s *Sale) IsTerminal() bool {
	return s.IsCompleted() || s.IsCancelled()
}

// GetItemByProduct returns a line by product ID
func (s *Sale) GetItemByProduct(productID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ProductID == productID {
			return &s.Items[idx]
		}
	}
	return nil
}
