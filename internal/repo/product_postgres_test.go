package repo_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/pos-dashboard/internal/db"
	"github.com/rogerio-castellano/pos-dashboard/internal/models"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbUrl := os.Getenv("TEST_DATABASE_URL")
	if dbUrl == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	database, err := db.Connect(dbUrl)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background(), database))
	t.Cleanup(func() {
		_, _ = database.Exec("TRUNCATE TABLE products")
		database.Close()
	})
	return database
}

func TestPostgres_ReplaceAllAndRead(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	r := repo.NewPostgresProductRepository(database)

	require.NoError(t, r.ReplaceAll(ctx, []models.Product{
		{Code: "00002", Name: "Broom", Category: "Cleaning", Quantity: -1, Price: decimal.RequireFromString("15.00")},
		{Code: "00001", Name: "Soap", Category: "Cleaning", Quantity: 10, Price: decimal.RequireFromString("1200.50")},
		{Code: "00003", Name: "Pen", Category: "Office", Quantity: 40, Price: decimal.RequireFromString("0.75")},
	}))

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "00001", all[0].Code)
	assert.True(t, all[0].Price.Equal(decimal.RequireFromString("1200.5")))
	assert.False(t, all[0].UpdatedAt.IsZero())

	limit := 1
	got, total, err := r.Filter(ctx, repo.ProductFilter{Category: "cleaning", Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, got, 1)

	_, err = r.GetByCode(ctx, "nope")
	assert.ErrorIs(t, err, repo.ErrProductNotFound)

	m, err := repo.NewPostgresMetricsRepository(database, 2).GetDashboardMetrics(ctx)
	require.NoError(t, err)
	want := repo.ComputeMetrics(all, 2)
	assert.Equal(t, want.TotalProducts, m.TotalProducts)
	assert.Equal(t, want.TotalUnits, m.TotalUnits)
	assert.True(t, want.InventoryValue.Equal(m.InventoryValue), "%s != %s", m.InventoryValue, want.InventoryValue)
	assert.Equal(t, want.NegativeStockCount, m.NegativeStockCount)
	assert.Equal(t, want.TopProducts, m.TopProducts)
	assert.Len(t, m.Categories, 2)
}

func TestPostgres_ReplaceAllRollsBack(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	r := repo.NewPostgresProductRepository(database)

	require.NoError(t, r.ReplaceAll(ctx, []models.Product{{Code: "00900", Name: "Original", Category: "General"}}))

	err := r.ReplaceAll(ctx, []models.Product{
		{Code: "00001", Name: "A", Category: "General"},
		{Code: "00001", Name: "B", Category: "General"},
	})
	require.ErrorIs(t, err, repo.ErrDuplicateCode)

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "00900", all[0].Code)
}

func TestPostgres_StoresFullQuantityAndPrice(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	r := repo.NewPostgresProductRepository(database)
	mem := repo.NewInMemoryProductRepository()

	batch := []models.Product{
		{Code: "00001", Name: "Bulk bolts", Category: "Hardware", Quantity: 3_000_000_000, Price: decimal.RequireFromString("1200.505")},
		{Code: "00002", Name: "Yacht", Category: "Boats", Quantity: -1, Price: decimal.RequireFromString("1000000000000")},
	}
	require.NoError(t, r.ReplaceAll(ctx, batch))
	require.NoError(t, mem.ReplaceAll(ctx, batch))

	stored, err := r.ListAll(ctx)
	require.NoError(t, err)
	want, _ := mem.ListAll(ctx)
	require.Len(t, stored, len(want))
	for i := range want {
		assert.Equal(t, want[i].Quantity, stored[i].Quantity)
		assert.True(t, want[i].Price.Equal(stored[i].Price), "%s: %s != %s", want[i].Code, stored[i].Price, want[i].Price)
	}

	m, err := repo.NewPostgresMetricsRepository(database, 1).GetDashboardMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2_999_999_999, m.TotalUnits)
}
