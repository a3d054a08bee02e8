package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/pos-dashboard/internal/db"
	handler "github.com/rogerio-castellano/pos-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/pos-dashboard/internal/http/router"
	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
	"github.com/rogerio-castellano/pos-dashboard/internal/logging"
	"github.com/rogerio-castellano/pos-dashboard/internal/models"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

var (
	productRepo *repo.PostgresProductRepository
	database    *sql.DB
)

func setupTestRepos(dbUrl string) error {
	var err error
	database, err = db.Connect(dbUrl)
	if err != nil {
		return err
	}
	if err := db.Migrate(context.Background(), database); err != nil {
		return err
	}
	productRepo = repo.NewPostgresProductRepository(database)
	return nil
}

func newRouter() http.Handler {
	log := logging.Discard()
	importer := ingest.NewImporter(productRepo, ingest.DefaultOptions(), log)
	srv := handler.NewServer(productRepo, repo.NewStoreMetricsRepository(productRepo, 5), importer, log,
		handler.WithHealthCheck("postgres", handler.PingFunc(database.PingContext)),
	)
	return router.NewRouter(srv, nil, log)
}

func clearAllProducts() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := database.ExecContext(ctx, "TRUNCATE TABLE products")
	if err != nil {
		fmt.Println(fmt.Errorf("failed to truncate products table: %w", err))
	}
}

func seedProducts(products ...models.Product) error {
	return productRepo.ReplaceAll(context.Background(), products)
}

func uploadFile(r http.Handler, path string, content []byte, filename string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
