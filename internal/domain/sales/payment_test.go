package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	tenantID := uuid.New()
	saleID := uuid.New()

	t.Run("records paid payment", func(t *testing.T) {
		p, err := NewPayment(tenantID, saleID, PaymentMethodCard, decimal.NewFromInt(150), "AUTH-1234")
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPaid, p.Status)
		assert.Equal(t, saleID, p.SaleID)
		assert.Equal(t, "AUTH-1234", p.Reference)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewPayment(tenantID, saleID, PaymentMethodCash, decimal.Zero, "")
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewPayment(tenantID, saleID, PaymentMethodCash, decimal.NewFromInt(-5), "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(tenantID, saleID, "CHECK", decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})

	t.Run("rejects missing sale", func(t *testing.T) {
		_, err := NewPayment(tenantID, uuid.Nil, PaymentMethodCash, decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})
}
