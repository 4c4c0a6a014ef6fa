package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active product with normalized sku", func(t *testing.T) {
		p, err := NewProduct(tenantID, "sku-001", "Cola 600ml")
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", p.SKU)
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.True(t, p.IsActive())
		assert.False(t, p.TaxEnabled)
	})

	t.Run("rejects empty sku", func(t *testing.T) {
		_, err := NewProduct(tenantID, "  ", "Cola 600ml")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(tenantID, "SKU-001", "")
		assert.Error(t, err)
	})
}

func TestProduct_EffectiveTaxRate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns rate when tax enabled", func(t *testing.T) {
		p, err := NewProduct(tenantID, "SKU-001", "Cola 600ml")
		require.NoError(t, err)
		require.NoError(t, p.SetTax(true, decimal.NewFromInt(16)))
		assert.True(t, p.EffectiveTaxRate().Equal(decimal.NewFromInt(16)))
	})

	t.Run("returns zero when tax disabled even with a rate", func(t *testing.T) {
		p, err := NewProduct(tenantID, "SKU-002", "Tortillas 1kg")
		require.NoError(t, err)
		require.NoError(t, p.SetTax(false, decimal.NewFromInt(16)))
		assert.True(t, p.EffectiveTaxRate().IsZero())
	})

	t.Run("rejects out-of-range rate", func(t *testing.T) {
		p, err := NewProduct(tenantID, "SKU-003", "Pan blanco")
		require.NoError(t, err)
		assert.Error(t, p.SetTax(true, decimal.NewFromInt(101)))
		assert.Error(t, p.SetTax(true, decimal.NewFromInt(-1)))
	})
}
