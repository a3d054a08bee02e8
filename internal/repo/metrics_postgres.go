package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PostgresMetricsRepository aggregates the dashboard in SQL instead of
// loading the whole collection.
type PostgresMetricsRepository struct {
	db   *sql.DB
	topN int
}

func NewPostgresMetricsRepository(db *sql.DB, topN int) *PostgresMetricsRepository {
	if topN <= 0 {
		topN = 5
	}
	return &PostgresMetricsRepository{db: db, topN: topN}
}

// GetDashboardMetrics implements MetricsRepository.
func (r *PostgresMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	m := Metrics{Categories: []CategorySummary{}, TopProducts: []TopProduct{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0)::bigint,
		       COALESCE(SUM(price * quantity) FILTER (WHERE quantity > 0), 0),
		       COALESCE(SUM(price), 0),
		       COALESCE(ROUND(AVG(price), 2), 0),
		       COUNT(DISTINCT category),
		       COUNT(*) FILTER (WHERE quantity < 0)
		FROM products
	`).Scan(&m.TotalProducts, &m.TotalUnits, &m.InventoryValue, &m.PriceTotal,
		&m.AveragePrice, &m.CategoryCount, &m.NegativeStockCount)
	if err != nil {
		return Metrics{}, fmt.Errorf("summary: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT category,
		       COUNT(*),
		       COALESCE(SUM(quantity), 0)::bigint,
		       COALESCE(SUM(price * quantity) FILTER (WHERE quantity > 0), 0)
		FROM products
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return Metrics{}, fmt.Errorf("categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		cs := CategorySummary{Value: decimal.Zero}
		if err := rows.Scan(&cs.Category, &cs.Products, &cs.Units, &cs.Value); err != nil {
			return Metrics{}, err
		}
		m.Categories = append(m.Categories, cs)
	}
	if err := rows.Err(); err != nil {
		return Metrics{}, err
	}

	top, err := r.db.QueryContext(ctx, `
		SELECT code, name, quantity
		FROM products
		ORDER BY quantity DESC, code
		LIMIT $1
	`, r.topN)
	if err != nil {
		return Metrics{}, fmt.Errorf("top products: %w", err)
	}
	defer top.Close()
	for top.Next() {
		var tp TopProduct
		if err := top.Scan(&tp.Code, &tp.Name, &tp.Quantity); err != nil {
			return Metrics{}, err
		}
		m.TopProducts = append(m.TopProducts, tp)
	}
	return m, top.Err()
}
