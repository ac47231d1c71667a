package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una prenda del catálogo, compartida entre tiendas.
// Price y CostPrice son opcionales (nil = no informado).
type Product struct {
	ID          string
	Name        string
	SKU         string // único global
	Category    string
	Size        string
	Color       string
	Price       *decimal.Decimal
	CostPrice   *decimal.Decimal
	ImageURL    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfitMargin devuelve (precio - costo) / precio * 100, o cero si falta alguno de los dos.
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.Price == nil || p.CostPrice == nil || p.Price.IsZero() || p.CostPrice.IsZero() {
		return decimal.Zero
	}
	return p.Price.Sub(*p.CostPrice).Div(*p.Price).Mul(decimal.NewFromInt(100)).Round(2)
}
