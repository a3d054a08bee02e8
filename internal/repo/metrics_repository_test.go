package repo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

func TestComputeMetrics(t *testing.T) {
	m := ComputeMetrics([]models.Product{
		product("00001", "Soap", "Cleaning", 10, "2.50"),
		product("00002", "Broom", "Cleaning", -3, "10"),
		product("00003", "Pen", "Office", 40, "0.75"),
		product("00004", "Paper", "Office", 40, "5"),
	}, 2)

	assert.Equal(t, 4, m.TotalProducts)
	assert.Equal(t, 87, m.TotalUnits)
	assert.True(t, m.InventoryValue.Equal(decimal.RequireFromString("255")), "got %s", m.InventoryValue)
	assert.True(t, m.PriceTotal.Equal(decimal.RequireFromString("18.25")))
	assert.True(t, m.AveragePrice.Equal(decimal.RequireFromString("4.56")), "got %s", m.AveragePrice)
	assert.Equal(t, 2, m.CategoryCount)
	assert.Equal(t, 1, m.NegativeStockCount)

	require.Len(t, m.Categories, 2)
	assert.Equal(t, "Cleaning", m.Categories[0].Category)
	assert.Equal(t, 7, m.Categories[0].Units)
	assert.True(t, m.Categories[0].Value.Equal(decimal.RequireFromString("25")))

	require.Len(t, m.TopProducts, 2)
	assert.Equal(t, "00003", m.TopProducts[0].Code, "ties broken by code")
	assert.Equal(t, "00004", m.TopProducts[1].Code)
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(nil, 5)
	assert.Zero(t, m.TotalProducts)
	assert.True(t, m.AveragePrice.IsZero())
	assert.NotNil(t, m.Categories)
	assert.NotNil(t, m.TopProducts)
}

func TestStoreMetricsRepository(t *testing.T) {
	store := NewInMemoryProductRepository()
	require.NoError(t, store.ReplaceAll(context.Background(), []models.Product{product("00001", "Soap", "General", 2, "3")}))

	m, err := NewStoreMetricsRepository(store, 0).GetDashboardMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalProducts)
	assert.True(t, m.InventoryValue.Equal(decimal.NewFromInt(6)))
}
