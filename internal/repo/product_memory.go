package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductStore.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	now      func() time.Time
}

// NewInMemoryProductRepository creates a new, empty InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		now:      time.Now,
	}
}

// ReplaceAll stages the new set on a fresh slice and only swaps it in once
// every record has been accepted, so a failure leaves the old set visible.
func (r *InMemoryProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make([]models.Product, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	ts := r.now().UTC()

	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := checkRecord(p); err != nil {
			return err
		}
		if _, dup := seen[p.Code]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, p.Code)
		}
		seen[p.Code] = struct{}{}
		p.UpdatedAt = ts
		staged = append(staged, p)
	}

	r.products = staged
	return nil
}

// ListAll returns a copy of the collection ordered by code.
func (r *InMemoryProductRepository) ListAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.products)
	sortByCode(out)
	return out, nil
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.Category != "" && !strings.EqualFold(p.Category, pf.Category) {
		return false
	}
	if pf.MinPrice != nil && p.Price.LessThan(decimal.NewFromFloat(*pf.MinPrice)) {
		return false
	}
	if pf.MaxPrice != nil && p.Price.GreaterThan(decimal.NewFromFloat(*pf.MaxPrice)) {
		return false
	}
	if pf.MinQty != nil && p.Quantity < *pf.MinQty {
		return false
	}
	if pf.MaxQty != nil && p.Quantity > *pf.MaxQty {
		return false
	}
	return true
}

func (r *InMemoryProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := []models.Product{}
	for _, p := range all {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	return page(filtered, pf), len(filtered), nil
}

// GetByCode retrieves a product by its code.
func (r *InMemoryProductRepository) GetByCode(_ context.Context, code string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

func sortByCode(products []models.Product) {
	slices.SortFunc(products, func(a, b models.Product) int {
		return strings.Compare(a.Code, b.Code)
	})
}
