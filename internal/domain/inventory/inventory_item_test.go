package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryItem(t *testing.T) {
	t.Run("creates zero-balance item", func(t *testing.T) {
		item, err := NewInventoryItem(uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.True(t, item.Quantity.IsZero())
		assert.True(t, item.ReservedQuantity.IsZero())
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewInventoryItem(uuid.New(), uuid.Nil, uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects missing warehouse", func(t *testing.T) {
		_, err := NewInventoryItem(uuid.New(), uuid.New(), uuid.Nil)
		assert.Error(t, err)
	})
}

func TestInventoryItem_Apply(t *testing.T) {
	t.Run("returns movement boundaries", func(t *testing.T) {
		item, err := NewInventoryItem(uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, err)
		item.Quantity = decimal.NewFromInt(10)

		previous, current := item.Apply(decimal.NewFromInt(-2))
		assert.Equal(t, "10", previous.String())
		assert.Equal(t, "8", current.String())
		assert.True(t, item.Quantity.Equal(current))
	})

	t.Run("allows negative balance", func(t *testing.T) {
		item, err := NewInventoryItem(uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, err)

		previous, current := item.Apply(decimal.NewFromInt(-3))
		assert.True(t, previous.IsZero())
		assert.Equal(t, "-3", current.String())
	})
}

func TestInventoryItem_IsBelowMinimum(t *testing.T) {
	item, err := NewInventoryItem(uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)

	assert.False(t, item.IsBelowMinimum()) // no threshold configured

	require.NoError(t, item.SetMinQuantity(decimal.NewFromInt(5)))
	item.Quantity = decimal.NewFromInt(3)
	assert.True(t, item.IsBelowMinimum())

	item.Quantity = decimal.NewFromInt(5)
	assert.False(t, item.IsBelowMinimum())
}
