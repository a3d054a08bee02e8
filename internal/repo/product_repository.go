package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/pos-dashboard/internal/models"
)

// ProductStore is the record store for the product collection. ReplaceAll is
// atomic: either every record is written and the previous set is gone, or the
// previous set is left exactly as it was.
type ProductStore interface {
	ReplaceAll(ctx context.Context, products []models.Product) error
	ListAll(ctx context.Context) ([]models.Product, error)
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	GetByCode(ctx context.Context, code string) (models.Product, error)
}

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateCode is returned when a replacement set carries the same code twice.
	ErrDuplicateCode = errors.New("duplicate product code")
	// ErrInvalidRecord is returned when a record breaks a store constraint.
	ErrInvalidRecord = errors.New("invalid product record")
)

func checkRecord(p models.Product) error {
	if strings.TrimSpace(p.Code) == "" {
		return fmt.Errorf("%w: empty code", ErrInvalidRecord)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name for code %s", ErrInvalidRecord, p.Code)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: negative price for code %s", ErrInvalidRecord, p.Code)
	}
	return nil
}
