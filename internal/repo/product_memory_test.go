package repo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

func product(code, name, category string, qty int, price string) models.Product {
	return models.Product{Code: code, Name: name, Category: category, Quantity: qty, Price: decimal.RequireFromString(price)}
}

func TestInMemory_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	require.NoError(t, r.ReplaceAll(ctx, []models.Product{
		product("00002", "Broom", "Cleaning", 3, "15"),
		product("00001", "Soap", "Cleaning", 10, "1200.50"),
	}))

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "00001", all[0].Code, "listed by code")
	assert.Equal(t, fixed, all[0].UpdatedAt)

	require.NoError(t, r.ReplaceAll(ctx, []models.Product{product("00003", "Mop", "Cleaning", 1, "9")}))
	all, _ = r.ListAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "00003", all[0].Code)
}

func TestInMemory_ReplaceAllFailureKeepsPreviousSet(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()
	require.NoError(t, r.ReplaceAll(ctx, []models.Product{product("00900", "Original", "General", 1, "1")}))

	tests := []struct {
		name  string
		batch []models.Product
		want  error
	}{
		{"invalid record midway", []models.Product{product("00001", "New", "General", 1, "1"), {Code: "00002"}}, ErrInvalidRecord},
		{"duplicate code", []models.Product{product("00001", "A", "General", 1, "1"), product("00001", "B", "General", 1, "1")}, ErrDuplicateCode},
		{"negative price", []models.Product{product("00001", "A", "General", 1, "-1")}, ErrInvalidRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ReplaceAll(ctx, tt.batch)
			require.ErrorIs(t, err, tt.want)

			all, _ := r.ListAll(ctx)
			require.Len(t, all, 1)
			assert.Equal(t, "00900", all[0].Code)
		})
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, r.ReplaceAll(cancelled, []models.Product{product("00001", "A", "General", 1, "1")}))
	all, _ := r.ListAll(ctx)
	assert.Equal(t, "00900", all[0].Code)
}

func TestInMemory_FilterAndGet(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()
	require.NoError(t, r.ReplaceAll(ctx, []models.Product{
		product("00001", "Phone", "Electronics", 10, "699.99"),
		product("00002", "Laptop", "Electronics", 5, "1299.99"),
		product("00003", "Mouse pad", "Accessories", 50, "9.99"),
	}))

	minPrice, maxQty, limit, offset := 10.0, 10, 1, 1
	got, total, err := r.Filter(ctx, ProductFilter{Category: "ELECTRONICS", MinPrice: &minPrice, MaxQty: &maxQty})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, got, 2)

	got, total, err = r.Filter(ctx, ProductFilter{Name: "o", Offset: &offset, Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "00002", got[0].Code)

	p, err := r.GetByCode(ctx, "00003")
	require.NoError(t, err)
	assert.Equal(t, "Mouse pad", p.Name)

	_, err = r.GetByCode(ctx, "3")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4}
	off, lim, far := 1, 2, 10

	assert.Equal(t, []int{2, 3}, page(items, ProductFilter{Offset: &off, Limit: &lim}))
	assert.Equal(t, []int{}, page(items, ProductFilter{Offset: &far}))
	assert.Equal(t, items, page(items, ProductFilter{}))
}
