package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStockStatus(t *testing.T) {
	reorder := decimal.NewFromInt(10)

	t.Run("zero stock is out of stock", func(t *testing.T) {
		assert.Equal(t, StockStatusOutOfStock, DeriveStockStatus(decimal.Zero, reorder))
	})

	t.Run("stock at reorder level is low", func(t *testing.T) {
		assert.Equal(t, StockStatusLowStock, DeriveStockStatus(decimal.NewFromInt(10), reorder))
	})

	t.Run("stock below reorder level is low", func(t *testing.T) {
		assert.Equal(t, StockStatusLowStock, DeriveStockStatus(decimal.NewFromInt(3), reorder))
	})

	t.Run("stock above reorder level is in stock", func(t *testing.T) {
		assert.Equal(t, StockStatusInStock, DeriveStockStatus(decimal.NewFromInt(11), reorder))
	})
}

func TestNewItem(t *testing.T) {
	createdBy := uuid.New()

	t.Run("creates item with defaults", func(t *testing.T) {
		item, err := NewItem(createdBy, "Teak Veneer Sheet", "Wardrobe", UnitSheets, decimal.NewFromInt(1500))

		require.NoError(t, err)
		assert.Equal(t, "Teak Veneer Sheet", item.ItemName)
		assert.True(t, item.ReorderLevel.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, StockStatusOutOfStock, item.Status)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		item, err := NewItem(createdBy, "", "Wardrobe", UnitSheets, decimal.NewFromInt(1500))

		assert.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		item, err := NewItem(createdBy, "Teak Veneer Sheet", "Wardrobe", UnitSheets, decimal.NewFromInt(-1))

		assert.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("fails with unknown unit", func(t *testing.T) {
		item, err := NewItem(createdBy, "Teak Veneer Sheet", "Wardrobe", Unit("dozen"), decimal.NewFromInt(1500))

		assert.Error(t, err)
		assert.Nil(t, item)
	})
}

func TestItemStockStatusFollowsMutations(t *testing.T) {
	item, err := NewItem(uuid.New(), "Teak Veneer Sheet", "Wardrobe", UnitSheets, decimal.NewFromInt(1500))
	require.NoError(t, err)

	require.NoError(t, item.SetStock(decimal.NewFromInt(50)))
	assert.Equal(t, StockStatusInStock, item.Status)

	require.NoError(t, item.SetReorderLevel(decimal.NewFromInt(60)))
	assert.Equal(t, StockStatusLowStock, item.Status)

	require.NoError(t, item.SetStock(decimal.Zero))
	assert.Equal(t, StockStatusOutOfStock, item.Status)

	t.Run("rejects negative stock", func(t *testing.T) {
		assert.Error(t, item.SetStock(decimal.NewFromInt(-5)))
	})
}

func TestSupplyItem(t *testing.T) {
	createdBy := uuid.New()

	t.Run("creates supply item with defaults", func(t *testing.T) {
		item, err := NewSupplyItem(createdBy, "Plywood 18mm", "Greenline Timber")

		require.NoError(t, err)
		assert.Equal(t, "Sheets", item.Unit)
		assert.True(t, item.ReorderPoint.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, StockStatusOutOfStock, item.Status)
		assert.Nil(t, item.LastReceived)
	})

	t.Run("uppercases the SKU", func(t *testing.T) {
		item, err := NewSupplyItem(createdBy, "Plywood 18mm", "Greenline Timber")
		require.NoError(t, err)

		item.SetSKU("ply-18-bwp")
		assert.Equal(t, "PLY-18-BWP", item.SKU)
	})

	t.Run("stock receipt stamps last received", func(t *testing.T) {
		item, err := NewSupplyItem(createdBy, "Plywood 18mm", "Greenline Timber")
		require.NoError(t, err)

		require.NoError(t, item.SetStock(decimal.NewFromInt(40)))
		assert.Equal(t, StockStatusInStock, item.Status)
		assert.NotNil(t, item.LastReceived)
	})
}
