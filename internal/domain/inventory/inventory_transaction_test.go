package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryTransaction(t *testing.T) {
	tenantID := uuid.New()
	itemID := uuid.New()

	t.Run("creates ledger row with chained balances", func(t *testing.T) {
		tx, err := NewInventoryTransaction(
			tenantID, itemID, uuid.New(), uuid.New(),
			MovementTypeSale,
			decimal.NewFromInt(-2), decimal.NewFromInt(10), decimal.NewFromInt(8),
			SourceTypeSale, uuid.New().String(),
		)
		require.NoError(t, err)
		assert.True(t, tx.NewQuantity.Equal(tx.PreviousQuantity.Add(tx.Quantity)))
		assert.True(t, tx.IsOutbound())
	})

	t.Run("rejects mismatched balance chain", func(t *testing.T) {
		_, err := NewInventoryTransaction(
			tenantID, itemID, uuid.New(), uuid.New(),
			MovementTypeSale,
			decimal.NewFromInt(-2), decimal.NewFromInt(10), decimal.NewFromInt(9),
			SourceTypeSale, uuid.New().String(),
		)
		assert.Error(t, err)
	})

	t.Run("rejects zero delta", func(t *testing.T) {
		_, err := NewInventoryTransaction(
			tenantID, itemID, uuid.New(), uuid.New(),
			MovementTypeSale,
			decimal.Zero, decimal.NewFromInt(10), decimal.NewFromInt(10),
			SourceTypeSale, uuid.New().String(),
		)
		assert.Error(t, err)
	})

	t.Run("rejects empty source id", func(t *testing.T) {
		_, err := NewInventoryTransaction(
			tenantID, itemID, uuid.New(), uuid.New(),
			MovementTypeSale,
			decimal.NewFromInt(-1), decimal.NewFromInt(1), decimal.Zero,
			SourceTypeSale, "",
		)
		assert.Error(t, err)
	})

	t.Run("rejects unknown movement type", func(t *testing.T) {
		_, err := NewInventoryTransaction(
			tenantID, itemID, uuid.New(), uuid.New(),
			"RELOCATION",
			decimal.NewFromInt(-1), decimal.NewFromInt(1), decimal.Zero,
			SourceTypeSale, uuid.New().String(),
		)
		assert.Error(t, err)
	})
}

func TestNewSaleMovement(t *testing.T) {
	item, err := NewInventoryItem(uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	item.Quantity = decimal.NewFromInt(5)

	saleID := uuid.New()
	previous, current := item.Apply(decimal.NewFromInt(-2))

	tx, err := NewSaleMovement(item, decimal.NewFromInt(-2), previous, current, saleID)
	require.NoError(t, err)
	assert.Equal(t, MovementTypeSale, tx.MovementType)
	assert.Equal(t, SourceTypeSale, tx.SourceType)
	assert.Equal(t, saleID.String(), tx.SourceID)
	assert.Equal(t, "5", tx.PreviousQuantity.String())
	assert.Equal(t, "3", tx.NewQuantity.String())

	// balance row stays in sync with the last ledger row
	assert.True(t, item.Quantity.Equal(tx.NewQuantity))
}

func TestMovementType_IsValid(t *testing.T) {
	for _, mt := range []MovementType{
		MovementTypeSale, MovementTypePurchase, MovementTypeTransfer,
		MovementTypeAdjustment, MovementTypeReturn, MovementTypeDamage, MovementTypeLoss,
	} {
		assert.True(t, mt.IsValid(), mt.String())
	}
	assert.False(t, MovementType("RELOCATION").IsValid())
}
