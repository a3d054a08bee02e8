package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	handler "github.com/rogerio-castellano/pos-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

func TestImportProductsHandler(t *testing.T) {
	r := newRouter()

	t.Run("File with aliased headers", func(t *testing.T) {
		t.Cleanup(clearAllProducts)
		csvData := "nombre,refer,codigo,q_fin,pvta1i\n\"Soap\",,\"001\",\"10\",\"$1,200.50\"\n"

		body, contentType := multipartCSV(csvData, "products.csv")
		req := httptest.NewRequest(http.MethodPost, "/products/import", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
		}

		var resp handler.ImportProductsResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ImportedProductsCount != 1 {
			t.Errorf("expected 1 imported product, got %d", resp.ImportedProductsCount)
		}
		if len(resp.Errors) != 0 {
			t.Errorf("expected no errors, got %v", resp.Errors)
		}
		if resp.Report.Source.Delimiter != "," {
			t.Errorf("expected comma delimiter, got %q", resp.Report.Source.Delimiter)
		}

		p, err := productRepo.GetByCode(context.Background(), "00001")
		if err != nil {
			t.Fatalf("expected product 00001 to be stored: %v", err)
		}
		if p.Name != "Soap" || p.Quantity != 10 || p.Category != "General" {
			t.Errorf("unexpected product %+v", p)
		}
		if !p.Price.Equal(decimal.RequireFromString("1200.50")) {
			t.Errorf("expected price 1200.50, got %s", p.Price)
		}
	})

	t.Run("Rows without name are reported and skipped", func(t *testing.T) {
		t.Cleanup(clearAllProducts)
		csvData := "producto;codigo;cantidad\nMouse;1;10\n;2;3\nKeyboard;3;N/A\n"

		w := uploadFile(r, "/products/import", []byte(csvData), "products.csv")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		resp, err := decode[handler.ImportProductsResult](w)
		if err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ImportedProductsCount != 2 {
			t.Errorf("expected 2 imported products, got %d", resp.ImportedProductsCount)
		}
		if len(resp.Errors) != 1 {
			t.Fatalf("expected 1 error, got %d", len(resp.Errors))
		}
		if !strings.Contains(resp.Errors[0].Description, "row 3") {
			t.Errorf("expected error for row 3, got %v", resp.Errors[0])
		}
	})

	t.Run("Import replaces the previous collection", func(t *testing.T) {
		t.Cleanup(clearAllProducts)
		seedProducts(models.Product{Code: "99999", Name: "Old", Category: "General"})

		w := uploadFile(r, "/products/import", []byte("producto;codigo\nNew;1\n"), "products.csv")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		all, _ := productRepo.ListAll(context.Background())
		if len(all) != 1 || all[0].Code != "00001" {
			t.Errorf("expected only the imported product, got %v", all)
		}
	})

	t.Run("Excel workbook", func(t *testing.T) {
		t.Cleanup(clearAllProducts)

		f := excelize.NewFile()
		defer f.Close()
		rows := [][]any{{"Producto", "Codigo", "Cantidad", "Precio", "Categoria"}, {"Broom", 7, 3, 15.5, "Cleaning"}}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			f.SetSheetRow("Sheet1", cell, &row)
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			t.Fatalf("failed to build workbook: %v", err)
		}

		w := uploadFile(r, "/products/import", buf.Bytes(), "stock.xlsx")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
		}
		p, err := productRepo.GetByCode(context.Background(), "00007")
		if err != nil || p.Category != "Cleaning" {
			t.Errorf("expected Cleaning product 00007, got %+v (%v)", p, err)
		}
	})

	failures := []struct {
		name     string
		filename string
		content  string
		status   int
		kind     string
	}{
		{"Unsupported extension", "products.pdf", "producto;codigo\nA;1\n", http.StatusUnsupportedMediaType, "UnreadableFormat"},
		{"No recognized header", "products.csv", "foo;bar\n1;2\n", http.StatusUnsupportedMediaType, "UnreadableFormat"},
		{"Missing code column", "products.csv", "producto;cantidad\nA;1\n", http.StatusUnprocessableEntity, "MissingRequiredColumns"},
		{"Every row invalid", "products.csv", "producto;codigo\n;1\n;2\n", http.StatusUnprocessableEntity, "EmptyResultSet"},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(clearAllProducts)
			seedProducts(models.Product{Code: "99999", Name: "Old", Category: "General"})

			w := uploadFile(r, "/products/import", []byte(tc.content), tc.filename)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			resp, err := decode[handler.ErrorResponse](w)
			if err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error != tc.kind {
				t.Errorf("expected error kind %s, got %s", tc.kind, resp.Error)
			}
			if resp.Message == "" {
				t.Error("expected a user message")
			}

			all, _ := productRepo.ListAll(context.Background())
			if len(all) != 1 || all[0].Code != "99999" {
				t.Errorf("store must be unchanged after a failed import, got %v", all)
			}
		})
	}

	t.Run("Missing columns lists what was found", func(t *testing.T) {
		t.Cleanup(clearAllProducts)
		w := uploadFile(r, "/products/import", []byte("producto;cantidad\nA;1\n"), "products.csv")
		resp, _ := decode[handler.ErrorResponse](w)
		if len(resp.Missing) != 1 || resp.Missing[0] != "codigo" {
			t.Errorf("expected codigo to be missing, got %v", resp.Missing)
		}
		if strings.Join(resp.Columns, ",") != "producto,cantidad" {
			t.Errorf("expected found columns, got %v", resp.Columns)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products/import", strings.NewReader(""))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("File too large", func(t *testing.T) {
		big := bytes.Repeat([]byte("x"), maxUploadBytes+1)
		w := uploadFile(r, "/products/import", big, "big.csv")
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("expected 413, got %d", w.Code)
		}
	})
}

func TestPreviewImportHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	seedProducts(models.Product{Code: "99999", Name: "Old", Category: "General"})

	w := uploadFile(r, "/products/import/preview", []byte("producto;codigo;precio\nA;1;2.5\nB;2;3\n"), "products.csv")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[handler.PreviewProductsResult](w)
	if err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Products) != 2 || resp.Products[0].Code != "00001" {
		t.Errorf("unexpected preview products %v", resp.Products)
	}
	if resp.Report.Committed {
		t.Error("preview must not commit")
	}

	all, _ := productRepo.ListAll(context.Background())
	if len(all) != 1 || all[0].Code != "99999" {
		t.Errorf("store must be unchanged after a preview, got %v", all)
	}
}

func TestImportHistoryAndTemplate(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	for _, name := range []string{"first.csv", "second.csv"} {
		w := uploadFile(r, "/products/import", []byte("producto;codigo\nA;1\n"), name)
		if w.Code != http.StatusOK {
			t.Fatalf("import failed: %d", w.Code)
		}
	}

	w := get(r, "/imports?limit=5")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[handler.ImportsResult](w)
	if err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].Filename != "second.csv" {
		t.Errorf("expected newest import first, got %v", resp.Data)
	}

	if w := get(r, "/imports?limit=0"); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for limit=0, got %d", w.Code)
	}

	t.Run("Template as JSON", func(t *testing.T) {
		w := get(r, "/products/import/template")
		if !strings.Contains(w.Body.String(), `"pvta1i"`) {
			t.Errorf("expected aliases in template, got %s", w.Body.String())
		}
	})

	t.Run("Template as CSV", func(t *testing.T) {
		w := get(r, "/products/import/template?format=csv")
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/csv") {
			t.Errorf("expected text/csv, got %s", ct)
		}
		if !strings.HasPrefix(w.Body.String(), "codigo,producto") {
			t.Errorf("expected CSV header in response, got: %s", w.Body.String())
		}
	})
}
