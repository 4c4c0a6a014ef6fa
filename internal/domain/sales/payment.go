package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a tender was received
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodOther    PaymentMethod = "OTHER"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	// PaymentStatusPaid is the only status this subsystem records: a payment
	// exists exactly because it was received during sale completion.
	PaymentStatusPaid PaymentStatus = "PAID"
)

// Payment is one tender applied to a sale. A sale may carry several payments
// that jointly cover its total (split tender).
type Payment struct {
	shared.BaseEntity
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Reference string          `gorm:"type:varchar(100)"`
	Status    PaymentStatus   `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a paid payment record for a sale
func NewPayment(tenantID, saleID uuid.UUID, method PaymentMethod, amount decimal.Decimal, reference string) (*Payment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		SaleID:     saleID,
		Method:     method,
		Amount:     amount,
		Reference:  reference,
		Status:     PaymentStatusPaid,
	}, nil
}
