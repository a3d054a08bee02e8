package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	handler "github.com/rogerio-castellano/pos-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/pos-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

func TestDashboardMetricsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	seedCatalog()

	w := get(r, "/metrics/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var metrics repo.Metrics
	if err := json.NewDecoder(w.Body).Decode(&metrics); err != nil {
		t.Fatalf("failed to decode metrics: %v", err)
	}

	if metrics.TotalProducts != 4 {
		t.Errorf("expected 4 total products, got %d", metrics.TotalProducts)
	}
	if metrics.CategoryCount != 2 {
		t.Errorf("expected 2 categories, got %d", metrics.CategoryCount)
	}
	if metrics.NegativeStockCount != 1 {
		t.Errorf("expected 1 negative stock line, got %d", metrics.NegativeStockCount)
	}
	// 699.99*10 + 1299.99*5 + 9.99*50; the negative Monitor line is excluded
	if want := decimal.RequireFromString("13999.35"); !metrics.InventoryValue.Equal(want) {
		t.Errorf("expected inventory value %s, got %s", want, metrics.InventoryValue)
	}
	if len(metrics.TopProducts) != 3 || metrics.TopProducts[0].Code != "00003" {
		t.Errorf("expected Mouse pad to lead top products, got %v", metrics.TopProducts)
	}
	if !mini.Exists(redissvc.DashboardKey) {
		t.Error("expected dashboard to be cached")
	}

	t.Run("Import invalidates the cache", func(t *testing.T) {
		w := uploadFile(r, "/products/import", []byte("producto;codigo;cantidad\nOnly;1;1\n"), "products.csv")
		if w.Code != http.StatusOK {
			t.Fatalf("import failed: %d", w.Code)
		}
		if mini.Exists(redissvc.DashboardKey) {
			t.Fatal("expected dashboard cache to be invalidated")
		}

		w = get(r, "/metrics/dashboard")
		var fresh repo.Metrics
		json.NewDecoder(w.Body).Decode(&fresh)
		if fresh.TotalProducts != 1 {
			t.Errorf("expected 1 product after import, got %d", fresh.TotalProducts)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	r := newRouter()

	w := get(r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, _ := decode[handler.HealthResponse](w)
	if resp.Status != "ok" || resp.Checks["redis"] != "ok" {
		t.Errorf("unexpected health %+v", resp)
	}
}
