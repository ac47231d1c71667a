package repository

import (
	"context"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// ProductFilter criterios de búsqueda del catálogo. Campos vacíos no filtran.
type ProductFilter struct {
	Query    string // coincidencia parcial sin mayúsculas en nombre, SKU o descripción
	Category string // exacta
	Size     string // exacta
	Color    string // parcial sin mayúsculas
}

// ProductFacets valores distintos presentes en el catálogo.
type ProductFacets struct {
	Categories []string
	Sizes      []string
	Colors     []string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create devuelve domain.ErrConflict si el SKU ya existe.
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Search devuelve productos ordenados por nombre.
	Search(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Facets(ctx context.Context) (ProductFacets, error)
}
