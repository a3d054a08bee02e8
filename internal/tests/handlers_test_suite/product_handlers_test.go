package handlers_test_suite

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	handler "github.com/rogerio-castellano/pos-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
	"github.com/rogerio-castellano/pos-dashboard/internal/logging"
	"github.com/rogerio-castellano/pos-dashboard/internal/models"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

func seedCatalog() {
	seedProducts(
		models.Product{Code: "00001", Name: "Phone", Category: "Electronics", Quantity: 10, Price: decimal.RequireFromString("699.99")},
		models.Product{Code: "00002", Name: "Laptop", Category: "Electronics", Quantity: 5, Price: decimal.RequireFromString("1299.99")},
		models.Product{Code: "00003", Name: "Mouse pad", Category: "Accessories", Quantity: 50, Price: decimal.RequireFromString("9.99")},
		models.Product{Code: "00004", Name: "Monitor", Category: "Electronics", Quantity: -2, Price: decimal.RequireFromString("199.99")},
	)
}

func TestGetProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	seedCatalog()

	w := get(r, "/products")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[[]handler.ProductResponse](w)
	if err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 4 {
		t.Fatalf("expected 4 products, got %d", len(resp))
	}
	if resp[0].Code != "00001" || !resp[0].Value.Equal(decimal.RequireFromString("6999.9")) {
		t.Errorf("unexpected first product %+v", resp[0])
	}
	if !resp[3].NegativeStock {
		t.Errorf("expected Monitor to be flagged as negative stock")
	}
}

func TestGetProductByCodeHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	seedCatalog()

	w := get(r, "/products/00002")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, _ := decode[handler.ProductResponse](w)
	if resp.Name != "Laptop" {
		t.Errorf("expected Laptop, got %s", resp.Name)
	}

	if w := get(r, "/products/2"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unpadded code, got %d", w.Code)
	}
}

func TestFilterProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	seedCatalog()

	t.Run("Filter by name", func(t *testing.T) {
		w := get(r, "/products/search?name=PHONE")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		resp, _ := decode[handler.ProductsSearchResult](w)
		if len(resp.Data) != 1 || !strings.Contains(strings.ToLower(resp.Data[0].Name), "phone") {
			t.Errorf("expected one product containing 'phone', got %v", resp.Data)
		}
	})

	t.Run("Filter by category", func(t *testing.T) {
		w := get(r, "/products/search?category=electronics")
		resp, _ := decode[handler.ProductsSearchResult](w)
		if resp.Meta.TotalCount != 3 {
			t.Errorf("expected 3 electronics, got %d", resp.Meta.TotalCount)
		}
	})

	t.Run("Filter by price range", func(t *testing.T) {
		w := get(r, "/products/search?minPrice=100&maxPrice=1000")
		resp, _ := decode[handler.ProductsSearchResult](w)
		if len(resp.Data) != 2 {
			t.Fatalf("expected 2 products, got %d", len(resp.Data))
		}
		for _, p := range resp.Data {
			if p.Price.LessThan(decimal.NewFromInt(100)) || p.Price.GreaterThan(decimal.NewFromInt(1000)) {
				t.Errorf("product price out of range: %v", p.Price)
			}
		}
	})

	t.Run("Filter by quantity", func(t *testing.T) {
		w := get(r, "/products/search?minQty=5&maxQty=20")
		resp, _ := decode[handler.ProductsSearchResult](w)
		for _, p := range resp.Data {
			if p.Quantity < 5 || p.Quantity > 20 {
				t.Errorf("quantity out of range: %v", p.Quantity)
			}
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		w := get(r, "/products/search?offset=1&limit=2")
		resp, _ := decode[handler.ProductsSearchResult](w)
		if len(resp.Data) != 2 || resp.Meta.TotalCount != 4 {
			t.Fatalf("expected 2 of 4 products, got %d of %d", len(resp.Data), resp.Meta.TotalCount)
		}
		if resp.Data[0].Code != "00002" {
			t.Errorf("expected page to start at 00002, got %s", resp.Data[0].Code)
		}
	})

	for _, q := range []string{"limit=0", "offset=-1", "minPrice=abc"} {
		t.Run("Invalid "+q, func(t *testing.T) {
			if w := get(r, "/products/search?"+q); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestExportProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	seedCatalog()

	t.Run("Export as CSV", func(t *testing.T) {
		w := get(r, "/products/export?format=csv")
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/csv") {
			t.Errorf("expected text/csv, got %s", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "inventory_backup_") {
			t.Errorf("expected attachment filename, got %s", cd)
		}
		if !strings.HasPrefix(w.Body.String(), "codigo,producto,referencia,categoria,cantidad,precio") {
			t.Errorf("expected CSV header in response, got: %s", w.Body.String())
		}
	})

	t.Run("Backup restores the collection", func(t *testing.T) {
		w := get(r, "/products/export?format=xlsx")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		restored := repo.NewInMemoryProductRepository()
		im := ingest.NewImporter(restored, ingest.DefaultOptions(), logging.Discard())
		if _, err := im.Import(context.Background(), "backup.xlsx", w.Body.Bytes()); err != nil {
			t.Fatalf("backup did not import: %v", err)
		}
		got, _ := restored.ListAll(context.Background())
		want, _ := productRepo.ListAll(context.Background())
		if len(got) != len(want) {
			t.Fatalf("expected %d products, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i].Code != want[i].Code || got[i].Quantity != want[i].Quantity || !got[i].Price.Equal(want[i].Price) {
				t.Errorf("restored %+v differs from %+v", got[i], want[i])
			}
		}
	})

	t.Run("Invalid format", func(t *testing.T) {
		if w := get(r, "/products/export?format=pdf"); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})
}
