package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	handler "github.com/rogerio-castellano/pos-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/pos-dashboard/internal/http/router"
	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
	"github.com/rogerio-castellano/pos-dashboard/internal/logging"
	"github.com/rogerio-castellano/pos-dashboard/internal/models"
	"github.com/rogerio-castellano/pos-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

const maxUploadBytes = 64 << 10

var (
	productRepo  *repo.InMemoryProductRepository
	redisService *redissvc.RedisService
	mini         *miniredis.Miniredis
)

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	productRepo = repo.NewInMemoryProductRepository()

	var err error
	mini, err = miniredis.Run()
	if err != nil {
		panic(fmt.Sprintf("error starting miniredis: %v", err))
	}
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	redisService = redissvc.NewRedisService(rdb, time.Minute, 20, logging.Discard())
}

// newRouter wires the API the same way the server binary does, with an
// in-memory store and miniredis.
func newRouter() http.Handler {
	log := logging.Discard()
	opts := ingest.DefaultOptions()
	importer := ingest.NewImporter(productRepo, opts, log, redisService)
	metrics := redissvc.NewCachedMetricsRepository(repo.NewStoreMetricsRepository(productRepo, 3), redisService)

	srv := handler.NewServer(productRepo, metrics, importer, log,
		handler.WithImportHistory(redisService),
		handler.WithHealthCheck("redis", redisService),
		handler.WithMaxUploadBytes(maxUploadBytes),
		handler.WithTemplateAliases(opts.Aliases.ByField()),
	)
	return router.NewRouter(srv, nil, log)
}

func clearAllProducts() {
	productRepo.Clear()
	mini.FlushAll()
}

func seedProducts(products ...models.Product) {
	if err := productRepo.ReplaceAll(context.Background(), products); err != nil {
		panic(fmt.Sprintf("error seeding products: %v", err))
	}
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	return multipartFile([]byte(csvContent), filename)
}

func multipartFile(content []byte, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write(content)

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func uploadFile(r http.Handler, path string, content []byte, filename string) *httptest.ResponseRecorder {
	body, contentType := multipartFile(content, filename)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)

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

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}
