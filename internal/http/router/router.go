package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/pos-dashboard/docs"
	"github.com/rogerio-castellano/pos-dashboard/internal/http/handlers"
	mw "github.com/rogerio-castellano/pos-dashboard/internal/http/middleware"
	rl "github.com/rogerio-castellano/pos-dashboard/internal/http/rate_limiter"
)

// NewRouter mounts every route. limiter may be nil to disable rate limiting
// of uploads.
func NewRouter(s *handlers.Server, limiter *rl.Limiter, log *logrus.Entry) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", s.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.GetProductsHandler)
		r.Get("/search", s.FilterProductsHandler)
		r.Get("/export", s.ExportProductsHandler)
		r.Get("/import/template", s.ImportTemplateHandler)
		r.Get("/{code}", s.GetProductByCodeHandler)

		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/import", s.ImportProductsHandler)
			r.Post("/import/preview", s.PreviewImportHandler)
		})
	})

	r.Get("/imports", s.ListImportsHandler)
	r.Get("/metrics/dashboard", s.GetDashboardMetricsHandler)

	return r
}
