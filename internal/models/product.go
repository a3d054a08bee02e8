package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to products whose source file carries no category column.
const DefaultCategory = "General"

// Product represents a product entity in the inventory system.
// Code is the stable key; it is kept as text so leading zeros survive.
type Product struct {
	Code      string          `json:"code" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Reference string          `json:"reference"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updated_at,omitzero"`
}

// Value is the stock value of the product line (price times quantity).
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
