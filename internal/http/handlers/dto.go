package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

type ProductResponse struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Reference     string          `json:"reference"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price" swaggertype:"string"`
	Value         decimal.Decimal `json:"value" swaggertype:"string"`
	NegativeStock bool            `json:"negative_stock,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

func toProductResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		Code:          p.Code,
		Name:          p.Name,
		Reference:     p.Reference,
		Category:      p.Category,
		Quantity:      p.Quantity,
		Price:         p.Price,
		Value:         p.Value(),
		NegativeStock: p.Quantity < 0,
	}
	if !p.UpdatedAt.IsZero() {
		ts := p.UpdatedAt
		resp.UpdatedAt = &ts
	}
	return resp
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
	Report                ingest.Report            `json:"report"`
}

type PreviewProductsResult struct {
	ImportProductsResult
	Products []ProductResponse `json:"products"`
}

type ImportsResult struct {
	Data []ingest.Report `json:"data"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Stage   string   `json:"stage,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Dropped int      `json:"dropped,omitempty"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
