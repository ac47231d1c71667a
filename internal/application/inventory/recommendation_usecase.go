package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

const (
	recommendationWindow   = 30 * 24 * time.Hour
	recommendationMinUnits = 5 // unidades vendidas en la ventana para considerar alta rotación
	recommendationTopN     = 5
)

// RecommendationUseCase sugiere reposiciones: productos con alta rotación en los últimos
// 30 días que están en stock bajo en alguna tienda, más el top de ingresos del período.
type RecommendationUseCase struct {
	invRepo       repository.InventoryRepository
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewRecommendationUseCase construye el caso de uso.
func NewRecommendationUseCase(
	invRepo repository.InventoryRepository,
	analyticsRepo repository.AnalyticsRepository,
) *RecommendationUseCase {
	return &RecommendationUseCase{invRepo: invRepo, analyticsRepo: analyticsRepo, now: time.Now}
}

// Generate devuelve las sugerencias ordenadas por prioridad (1 = más urgente).
func (uc *RecommendationUseCase) Generate(ctx context.Context) (*dto.RecommendationsResponse, error) {
	since := uc.now().Add(-recommendationWindow)

	// 1. Productos con rotación alta
	fast, err := uc.analyticsRepo.UnitsSoldSince(ctx, since, recommendationMinUnits)
	if err != nil {
		return nil, fmt.Errorf("recommendations: rotación: %w", err)
	}

	// 2. Cruce con filas en stock bajo
	restock := make([]dto.RestockSuggestionDTO, 0, len(fast))
	for _, p := range fast {
		lows, err := uc.invRepo.ListItems(ctx, repository.InventoryFilter{ProductID: p.ProductID, LowOnly: true})
		if err != nil {
			return nil, fmt.Errorf("recommendations: inventario: %w", err)
		}
		if len(lows) == 0 {
			continue
		}
		s := dto.RestockSuggestionDTO{
			ProductID:        p.ProductID,
			SKU:              p.SKU,
			ProductName:      p.Name,
			UnitsSoldLast30d: p.Units,
			LowStockStores:   make([]dto.LowStockStoreDTO, 0, len(lows)),
		}
		for _, it := range lows {
			s.LowStockStores = append(s.LowStockStores, dto.LowStockStoreDTO{
				StoreID:   it.Record.StoreID,
				StoreName: it.StoreName,
				Quantity:  it.Record.Quantity,
				Threshold: it.Record.LowStockThreshold,
			})
			s.SuggestedQuantity += suggestedQuantity(it.Record.Quantity, it.Record.LowStockThreshold)
		}
		restock = append(restock, s)
	}

	// 3. Ordenar: mayor rotación primero, luego mayor cantidad sugerida
	sort.SliceStable(restock, func(i, j int) bool {
		a, b := restock[i], restock[j]
		if a.UnitsSoldLast30d != b.UnitsSoldLast30d {
			return a.UnitsSoldLast30d > b.UnitsSoldLast30d
		}
		return a.SuggestedQuantity > b.SuggestedQuantity
	})
	for i := range restock {
		restock[i].Priority = i + 1
	}

	// 4. Top de ingresos del período
	top, err := uc.analyticsRepo.TopProducts(ctx, &since, recommendationTopN)
	if err != nil {
		return nil, fmt.Errorf("recommendations: top: %w", err)
	}
	topOut := make([]dto.ProductSalesDTO, 0, len(top))
	for _, p := range top {
		topOut = append(topOut, dto.ToProductSalesDTO(p))
	}

	return &dto.RecommendationsResponse{Restock: restock, TopProducts: topOut}, nil
}

// suggestedQuantity lleva la fila a 1.5 veces el umbral (mínimo una unidad).
func suggestedQuantity(quantity, threshold int) int {
	ideal := (threshold*3 + 1) / 2
	if q := ideal - quantity; q > 0 {
		return q
	}
	return 1
}
