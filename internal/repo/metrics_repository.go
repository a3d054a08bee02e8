package repo

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

type CategorySummary struct {
	Category string          `json:"category"`
	Products int             `json:"products"`
	Units    int             `json:"units"`
	Value    decimal.Decimal `json:"value"`
}

type TopProduct struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Metrics struct {
	TotalProducts int `json:"total_products"`
	TotalUnits    int `json:"total_units"`
	// InventoryValue sums price*quantity over lines with positive stock.
	InventoryValue decimal.Decimal `json:"inventory_value"`
	// PriceTotal is the plain sum of unit prices.
	PriceTotal         decimal.Decimal   `json:"price_total"`
	AveragePrice       decimal.Decimal   `json:"average_price"`
	CategoryCount      int               `json:"category_count"`
	NegativeStockCount int               `json:"negative_stock_count"`
	Categories         []CategorySummary `json:"categories"`
	TopProducts        []TopProduct      `json:"top_products"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context) (Metrics, error)
}

// StoreMetricsRepository derives the dashboard from the current product set.
type StoreMetricsRepository struct {
	store ProductStore
	topN  int
}

func NewStoreMetricsRepository(store ProductStore, topN int) *StoreMetricsRepository {
	if topN <= 0 {
		topN = 5
	}
	return &StoreMetricsRepository{store: store, topN: topN}
}

// GetDashboardMetrics implements MetricsRepository.
func (r *StoreMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	products, err := r.store.ListAll(ctx)
	if err != nil {
		return Metrics{}, err
	}
	return ComputeMetrics(products, r.topN), nil
}

func ComputeMetrics(products []models.Product, topN int) Metrics {
	m := Metrics{
		InventoryValue: decimal.Zero,
		PriceTotal:     decimal.Zero,
		AveragePrice:   decimal.Zero,
		Categories:     []CategorySummary{},
		TopProducts:    []TopProduct{},
	}
	byCategory := map[string]*CategorySummary{}

	for _, p := range products {
		m.TotalProducts++
		m.TotalUnits += p.Quantity
		m.PriceTotal = m.PriceTotal.Add(p.Price)
		if p.Quantity < 0 {
			m.NegativeStockCount++
		}

		cs, ok := byCategory[p.Category]
		if !ok {
			cs = &CategorySummary{Category: p.Category, Value: decimal.Zero}
			byCategory[p.Category] = cs
		}
		cs.Products++
		cs.Units += p.Quantity
		if p.Quantity > 0 {
			m.InventoryValue = m.InventoryValue.Add(p.Value())
			cs.Value = cs.Value.Add(p.Value())
		}
	}

	if m.TotalProducts > 0 {
		m.AveragePrice = m.PriceTotal.Div(decimal.NewFromInt(int64(m.TotalProducts))).Round(2)
	}

	m.CategoryCount = len(byCategory)
	for _, cs := range byCategory {
		m.Categories = append(m.Categories, *cs)
	}
	slices.SortFunc(m.Categories, func(a, b CategorySummary) int {
		return strings.Compare(a.Category, b.Category)
	})

	ranked := slices.Clone(products)
	slices.SortStableFunc(ranked, func(a, b models.Product) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})
	for i, p := range ranked {
		if i == topN {
			break
		}
		m.TopProducts = append(m.TopProducts, TopProduct{Code: p.Code, Name: p.Name, Quantity: p.Quantity})
	}

	return m
}
