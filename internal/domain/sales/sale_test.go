package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/domain/shared"
)

func newDraftSale(t *testing.T) *Sale {
	t.Helper()
	sale, err := NewSale(uuid.New(), FormatFolio(1), uuid.New(), SaleTypePOS)
	require.NoError(t, err)
	return sale
}

func TestFormatFolio(t *testing.T) {
	assert.Equal(t, "V-00001", FormatFolio(1))
	assert.Equal(t, "V-00042", FormatFolio(42))
	assert.Equal(t, "V-123456", FormatFolio(123456))
}

func TestNewSale(t *testing.T) {
	t.Run("creates draft sale with POS default", func(t *testing.T) {
		sale, err := NewSale(uuid.New(), "V-00001", uuid.New(), "")
		require.NoError(t, err)
		assert.Equal(t, SaleStatusDraft, sale.Status)
		assert.Equal(t, SaleTypePOS, sale.Type)
		assert.True(t, sale.Total.IsZero())
	})

	t.Run("rejects empty folio", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "", uuid.New(), SaleTypePOS)
		assert.Error(t, err)
	})

	t.Run("rejects missing warehouse", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "V-00001", uuid.Nil, SaleTypePOS)
		assert.Error(t, err)
	})

	t.Run("rejects unknown sale type", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "V-00001", uuid.New(), "WHOLESALE")
		assert.Error(t, err)
	})
}

func TestSale_AddItem(t *testing.T) {
	t.Run("computes taxed line and totals", func(t *testing.T) {
		sale := newDraftSale(t)

		// qty=2 at 100.00 with 16% tax: subtotal 200.00, tax 32.00, total 232.00
		item, err := sale.AddItem(uuid.New(), "Cola 600ml", "SKU-001",
			decimal.NewFromInt(100), decimal.NewFromInt(2), decimal.Zero, decimal.NewFromInt(16))
		require.NoError(t, err)

		assert.Equal(t, "232.00", item.LineTotal.StringFixed(2))
		assert.Equal(t, "200.00", sale.Subtotal.StringFixed(2))
		assert.Equal(t, "32.00", sale.TaxTotal.StringFixed(2))
		assert.Equal(t, "232.00", sale.Total.StringFixed(2))
		assert.True(t, sale.Total.Equal(sale.Subtotal.Add(sale.TaxTotal)))
	})

	t.Run("applies discount before tax", func(t *testing.T) {
		sale := newDraftSale(t)

		// 3 * 50.00, 10% off, 16% tax: net 135.00, tax 21.60, line 156.60
		item, err := sale.AddItem(uuid.New(), "Detergente 1L", "SKU-002",
			decimal.NewFromInt(50), decimal.NewFromInt(3), decimal.NewFromInt(10), decimal.NewFromInt(16))
		require.NoError(t, err)

		assert.Equal(t, "156.60", item.LineTotal.StringFixed(2))
		assert.Equal(t, "135.00", sale.Subtotal.StringFixed(2))
		assert.Equal(t, "15.00", sale.DiscountTotal.StringFixed(2))
		assert.Equal(t, "21.60", sale.TaxTotal.StringFixed(2))
	})

	t.Run("rounds line total half away from zero", func(t *testing.T) {
		sale := newDraftSale(t)

		// 3 * 1.135 = 3.405 -> 3.41 wants half-away-from-zero
		item, err := sale.AddItem(uuid.New(), "Chicle", "SKU-003",
			decimal.RequireFromString("1.135"), decimal.NewFromInt(3), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "3.41", item.LineTotal.StringFixed(2))
	})

	t.Run("snapshot decouples line from catalog", func(t *testing.T) {
		sale := newDraftSale(t)
		productID := uuid.New()
		_, err := sale.AddItem(productID, "Nombre original", "SKU-004",
			decimal.NewFromInt(10), decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		line := sale.GetItemByProduct(productID)
		require.NotNil(t, line)
		assert.Equal(t, "Nombre original", line.ProductName)
		assert.Equal(t, "SKU-004", line.ProductSKU)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "X", "SKU", decimal.NewFromInt(10), decimal.Zero, decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects discount above 100", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "X", "SKU", decimal.NewFromInt(10), decimal.NewFromInt(1), decimal.NewFromInt(101), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects items on a non-draft sale", func(t *testing.T) {
		sale := newDraftSale(t)
		require.NoError(t, sale.Cancel(""))

		_, err := sale.AddItem(uuid.New(), "X", "SKU", decimal.NewFromInt(10), decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "Sale.InvalidStatus", domainErr.Code)
	})
}

func TestSale_Complete(t *testing.T) {
	setup := func(t *testing.T) *Sale {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "Cola 600ml", "SKU-001",
			decimal.NewFromInt(100), decimal.NewFromInt(2), decimal.Zero, decimal.NewFromInt(16))
		require.NoError(t, err)
		return sale
	}

	t.Run("completes with exact payment", func(t *testing.T) {
		sale := setup(t)
		_, err := sale.AddPayment(PaymentMethodCash, decimal.RequireFromString("232.00"), "")
		require.NoError(t, err)

		require.NoError(t, sale.Complete())
		assert.Equal(t, SaleStatusCompleted, sale.Status)
		require.NotNil(t, sale.CompletedAt)
		assert.Equal(t, PaymentStatusPaid, sale.Payments[0].Status)
	})

	t.Run("accepts split tender", func(t *testing.T) {
		sale := setup(t)
		_, err := sale.AddPayment(PaymentMethodCash, decimal.NewFromInt(100), "")
		require.NoError(t, err)
		_, err = sale.AddPayment(PaymentMethodCard, decimal.NewFromInt(132), "AUTH-9921")
		require.NoError(t, err)

		require.NoError(t, sale.Complete())
		assert.Len(t, sale.Payments, 2)
	})

	t.Run("accepts overpayment with no further effect", func(t *testing.T) {
		sale := setup(t)
		_, err := sale.AddPayment(PaymentMethodCash, decimal.NewFromInt(300), "")
		require.NoError(t, err)

		require.NoError(t, sale.Complete())
		assert.Equal(t, "300.00", sale.PaymentTotal().StringFixed(2))
		assert.Equal(t, "68.00 MXN", sale.ChangeDue().String())
		assert.Len(t, sale.Payments, 1) // no change/credit record generated
	})

	t.Run("reports zero change on exact and short payment", func(t *testing.T) {
		sale := setup(t)
		assert.True(t, sale.ChangeDue().IsZero(), "short payment must not report change")

		_, err := sale.AddPayment(PaymentMethodCash, decimal.NewFromInt(232), "")
		require.NoError(t, err)
		require.NoError(t, sale.Complete())
		assert.True(t, sale.ChangeDue().IsZero())
	})

	t.Run("rejects short payment without mutating status", func(t *testing.T) {
		sale := setup(t)
		_, err := sale.AddPayment(PaymentMethodCash, decimal.NewFromInt(100), "")
		require.NoError(t, err)

		err = sale.Complete()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "Sale.PaymentShort", domainErr.Code)
		assert.Equal(t, shared.KindValidation, domainErr.Kind)
		assert.Contains(t, domainErr.Message, "100.00 MXN")
		assert.Contains(t, domainErr.Message, "232.00 MXN")
		assert.Equal(t, SaleStatusDraft, sale.Status)
	})

	t.Run("rejects double completion", func(t *testing.T) {
		sale := setup(t)
		_, err := sale.AddPayment(PaymentMethodCash, decimal.NewFromInt(232), "")
		require.NoError(t, err)
		require.NoError(t, sale.Complete())

		err = sale.Complete()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "Sale.InvalidStatus", domainErr.Code)
		assert.Contains(t, domainErr.Message, "COMPLETED")
	})

	t.Run("rejects completion without items", func(t *testing.T) {
		sale := newDraftSale(t)
		assert.Error(t, sale.Complete())
	})
}

func TestSale_Cancel(t *testing.T) {
	t.Run("cancels draft with reason set as notes", func(t *testing.T) {
		sale := newDraftSale(t)
		require.NoError(t, sale.Cancel("duplicate order"))
		assert.Equal(t, SaleStatusCancelled, sale.Status)
		assert.Equal(t, "Cancelled: duplicate order", sale.Notes)
	})

	t.Run("appends reason after existing notes", func(t *testing.T) {
		sale := newDraftSale(t)
		sale.SetNotes("counter 3")
		require.NoError(t, sale.Cancel("customer left"))
		assert.Equal(t, "counter 3\nCancelled: customer left", sale.Notes)
	})

	t.Run("keeps notes untouched without a reason", func(t *testing.T) {
		sale := newDraftSale(t)
		sale.SetNotes("counter 3")
		require.NoError(t, sale.Cancel(""))
		assert.Equal(t, "counter 3", sale.Notes)
	})

	t.Run("rejects cancelling twice", func(t *testing.T) {
		sale := newDraftSale(t)
		require.NoError(t, sale.Cancel(""))

		err := sale.Cancel("")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "Sale.AlreadyCancelled", domainErr.Code)
	})

	t.Run("rejects cancelling a completed sale", func(t *testing.T) {
		sale := newDraftSale(t)
		_, err := sale.AddItem(uuid.New(), "X", "SKU", decimal.NewFromInt(10), decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		_, err = sale.AddPayment(PaymentMethodCash, decimal.NewFromInt(10), "")
		require.NoError(t, err)
		require.NoError(t, sale.Complete())

		err = sale.Cancel("too late")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "Sale.CannotCancelCompleted", domainErr.Code)
		assert.True(t, sale.IsCompleted())
	})
}

func TestSale_StatusMachine(t *testing.T) {
	assert.True(t, SaleStatusDraft.CanTransitionTo(SaleStatusCompleted))
	assert.True(t, SaleStatusDraft.CanTransitionTo(SaleStatusCancelled))
	assert.False(t, SaleStatusCompleted.CanTransitionTo(SaleStatusDraft))
	assert.False(t, SaleStatusCompleted.CanTransitionTo(SaleStatusCancelled))
	assert.False(t, SaleStatusCancelled.CanTransitionTo(SaleStatusCompleted))
}
