package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/pos-dashboard/internal/export"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.ListAll(r.Context())
	if err != nil {
		s.log.WithError(err).Error("list products")
		s.fail(w, http.StatusInternalServerError, "Internal", "could not fetch products")
		return
	}
	s.respond(w, http.StatusOK, toProductResponses(products))
}

// GetProductByCodeHandler godoc
// @Summary Get product by code
// @Tags products
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /products/{code} [get]
func (s *Server) GetProductByCodeHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	product, err := s.products.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			s.fail(w, http.StatusNotFound, "NotFound", "product not found")
			return
		}
		s.log.WithError(err).WithField("code", code).Error("get product")
		s.fail(w, http.StatusInternalServerError, "Internal", "could not fetch product")
		return
	}
	s.respond(w, http.StatusOK, toProductResponse(product))
}

// FilterProductsHandler godoc
// @Summary Filter and paginate products
// @Tags products
// @Produce json
// @Param name query string false "Name contains (case-insensitive)"
// @Param category query string false "Exact category (case-insensitive)"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minQty query int false "Minimum quantity"
// @Param maxQty query int false "Maximum quantity"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /products/search [get]
func (s *Server) FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.ProductFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
	}
	var errs []error
	var err error
	filter.MinPrice, err = parseFloatPtr(q.Get("minPrice"))
	errs = append(errs, err)
	filter.MaxPrice, err = parseFloatPtr(q.Get("maxPrice"))
	errs = append(errs, err)
	filter.MinQty, err = parseIntPtr(q.Get("minQty"))
	errs = append(errs, err)
	filter.MaxQty, err = parseIntPtr(q.Get("maxQty"))
	errs = append(errs, err)
	filter.Offset, err = parseIntPtr(q.Get("offset"))
	errs = append(errs, err)
	filter.Limit, err = parseIntPtr(q.Get("limit"))
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		s.fail(w, http.StatusBadRequest, "InvalidQuery", "numeric filters must be numbers")
		return
	}

	if filter.Limit != nil && *filter.Limit <= 0 {
		s.fail(w, http.StatusBadRequest, "InvalidQuery", "limit must be greater than zero")
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		s.fail(w, http.StatusBadRequest, "InvalidQuery", "offset must be zero or positive")
		return
	}

	products, total, err := s.products.Filter(r.Context(), filter)
	if err != nil {
		s.log.WithError(err).Error("filter products")
		s.fail(w, http.StatusInternalServerError, "Internal", "could not filter products")
		return
	}

	s.respond(w, http.StatusOK, ProductsSearchResult{
		Data: toProductResponses(products),
		Meta: Meta{TotalCount: total},
	})
}

// ExportProductsHandler godoc
// @Summary Download a backup of the product collection
// @Description The file uses the canonical column names and can be imported back as is.
// @Tags products
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Unsupported format"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /products/export [get]
func (s *Server) ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, http.StatusBadRequest, "InvalidQuery", err.Error())
		return
	}

	products, err := s.products.ListAll(r.Context())
	if err != nil {
		s.log.WithError(err).Error("export products")
		s.fail(w, http.StatusInternalServerError, "Internal", "could not fetch products")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, products); err != nil {
		s.log.WithError(err).Error("export products")
		s.fail(w, http.StatusInternalServerError, "Internal", "could not build backup")
		return
	}

	name := format.Filename("inventory_backup_" + time.Now().Format("20060102"))
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	_, _ = w.Write(buf.Bytes())
}
