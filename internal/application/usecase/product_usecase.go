package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// LabelGenerator genera la etiqueta imprimible (código de barras) de un producto.
type LabelGenerator interface {
	GenerateLabel(p *entity.Product) ([]byte, error)
}

// ProductUseCase búsqueda de catálogo con stock por tienda y etiquetas de producto.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	invRepo     repository.InventoryRepository
	labels      LabelGenerator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, invRepo repository.InventoryRepository, labels LabelGenerator) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, invRepo: invRepo, labels: labels}
}

// Search filtra el catálogo y adjunta el stock de cada producto en cada tienda, más las facetas.
func (uc *ProductUseCase) Search(ctx context.Context, in dto.ProductSearchRequest) (*dto.ProductSearchResponse, error) {
	products, err := uc.productRepo.Search(ctx, repository.ProductFilter{
		Query:    in.Query,
		Category: in.Category,
		Size:     in.Size,
		Color:    in.Color,
	})
	if err != nil {
		return nil, err
	}
	facets, err := uc.productRepo.Facets(ctx)
	if err != nil {
		return nil, err
	}

	stock := map[string][]dto.StoreStockDTO{}
	if len(products) > 0 {
		items, err := uc.invRepo.ListItems(ctx, repository.InventoryFilter{})
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			stock[it.Record.ProductID] = append(stock[it.Record.ProductID], dto.StoreStockDTO{
				InventoryID: it.Record.ID,
				StoreID:     it.Record.StoreID,
				StoreName:   it.StoreName,
				Quantity:    it.Record.Quantity,
				IsLow:       it.Record.IsLow(),
			})
		}
	}

	out := &dto.ProductSearchResponse{
		Items: make([]dto.ProductSearchItem, 0, len(products)),
		Facets: dto.FacetsDTO{
			Categories: nonNil(facets.Categories),
			Sizes:      nonNil(facets.Sizes),
			Colors:     nonNil(facets.Colors),
		},
	}
	for _, p := range products {
		inv := stock[p.ID]
		if inv == nil {
			inv = []dto.StoreStockDTO{}
		}
		out.Items = append(out.Items, dto.ProductSearchItem{Product: dto.ToProductResponse(p), Inventory: inv})
	}
	return out, nil
}

// Label devuelve el PDF de etiqueta del producto.
func (uc *ProductUseCase) Label(ctx context.Context, productID string) ([]byte, *dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	pdf, err := uc.labels.GenerateLabel(p)
	if err != nil {
		return nil, nil, fmt.Errorf("generar etiqueta: %w", err)
	}
	out := dto.ToProductResponse(p)
	return pdf, &out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
