package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stylelane-api/internal/domain"
)

// ApplySale resta lo vendido al stock actual con piso en cero.
// Una venta mayor al stock se acepta: el registro de venta conserva la cantidad completa.
func ApplySale(current, sold int) int {
	if sold >= current {
		return 0
	}
	return current - sold
}

// ApplyRestock suma la cantidad despachada al stock actual.
func ApplyRestock(current, received int) int {
	return current + received
}

// SaleTotal calcula cantidad * precio unitario.
func SaleTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ValidateSale valida la entrada de una venta.
func ValidateSale(quantity int, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: la cantidad vendida debe ser mayor a cero", domain.ErrValidation)
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrValidation)
	}
	return nil
}
