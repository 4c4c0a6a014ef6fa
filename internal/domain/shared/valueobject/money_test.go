package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyMXN(decimal.NewFromInt(100))
		b := NewMoneyMXN(decimal.NewFromInt(32))
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(132)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyMXN(decimal.NewFromInt(100))
		b, _ := NewMoney(decimal.NewFromInt(1), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoney_Round(t *testing.T) {
	t.Run("rounds half away from zero", func(t *testing.T) {
		m := NewMoneyMXN(decimal.RequireFromString("2.005"))
		assert.Equal(t, "2.01", m.Round(2).Amount().StringFixed(2))

		n := NewMoneyMXN(decimal.RequireFromString("-2.005"))
		assert.Equal(t, "-2.01", n.Round(2).Amount().StringFixed(2))
	})
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyMXN(decimal.NewFromInt(232))
	b := NewMoneyMXN(decimal.NewFromInt(100))

	assert.True(t, a.GreaterThanOrEqual(b))
	assert.True(t, b.LessThan(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewMoneyMXN(decimal.NewFromInt(232))))
	assert.True(t, ZeroMXN().IsZero())
}
