// Package analytics contiene los casos de uso de analítica de ventas, reportes
// y el panel del administrador.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

const (
	topProductsLimit = 10
	dailyWindowDays  = 7
)

// AnalyticsUseCase consolida las métricas de ventas de todas las tiendas.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	saleRepo      repository.SaleRepository
	now           func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository, saleRepo repository.SaleRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo, saleRepo: saleRepo, now: time.Now}
}

// Get construye el AnalyticsResponse.
//
// Cinco consultas independientes en paralelo:
//  1. TopProducts(10)          → TopProducts
//  2. SalesByStore             → SalesByStore
//  3. DailyRevenueSince(7 días) → DailySales
//  4. SalesByCategory          → SalesByCategory
//  5. Totals                   → TotalRevenue + TotalSales
func (uc *AnalyticsUseCase) Get(ctx context.Context) (*dto.AnalyticsResponse, error) {
	today := startOfDay(uc.now())
	since := today.AddDate(0, 0, -(dailyWindowDays - 1))

	type topResult struct {
		rows []repository.ProductSales
		err  error
	}
	type storeResult struct {
		rows []repository.StoreSales
		err  error
	}
	type dailyResult struct {
		rows []repository.DailyRevenue
		err  error
	}
	type categoryResult struct {
		rows []repository.CategorySales
		err  error
	}
	type totalsResult struct {
		revenue decimal.Decimal
		count   int
		err     error
	}

	topCh := make(chan topResult, 1)
	storeCh := make(chan storeResult, 1)
	dailyCh := make(chan dailyResult, 1)
	catCh := make(chan categoryResult, 1)
	totalsCh := make(chan totalsResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.TopProducts(ctx, nil, topProductsLimit)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.SalesByStore(ctx)
		storeCh <- storeResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.DailyRevenueSince(ctx, since)
		dailyCh <- dailyResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.SalesByCategory(ctx)
		catCh <- categoryResult{rows, err}
	}()
	go func() {
		rev, count, err := uc.saleRepo.Totals(ctx)
		totalsCh <- totalsResult{rev, count, err}
	}()

	top, stores, daily, cats, totals := <-topCh, <-storeCh, <-dailyCh, <-catCh, <-totalsCh

	if top.err != nil {
		return nil, fmt.Errorf("analytics: top productos: %w", top.err)
	}
	if stores.err != nil {
		return nil, fmt.Errorf("analytics: por tienda: %w", stores.err)
	}
	if daily.err != nil {
		return nil, fmt.Errorf("analytics: diario: %w", daily.err)
	}
	if cats.err != nil {
		return nil, fmt.Errorf("analytics: por categoría: %w", cats.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("analytics: totales: %w", totals.err)
	}

	out := &dto.AnalyticsResponse{
		TopProducts:     make([]dto.ProductSalesDTO, 0, len(top.rows)),
		SalesByStore:    make([]dto.StoreSalesDTO, 0, len(stores.rows)),
		DailySales:      fillDays(daily.rows, since, dailyWindowDays),
		SalesByCategory: make([]dto.CategorySalesDTO, 0, len(cats.rows)),
		TotalRevenue:    totals.revenue.Round(2),
		TotalSales:      totals.count,
	}
	for _, p := range top.rows {
		out.TopProducts = append(out.TopProducts, dto.ToProductSalesDTO(p))
	}
	for _, s := range stores.rows {
		out.SalesByStore = append(out.SalesByStore, dto.StoreSalesDTO{
			StoreID: s.StoreID, StoreName: s.StoreName, UnitsSold: s.Units, Revenue: s.Revenue,
		})
	}
	for _, c := range cats.rows {
		out.SalesByCategory = append(out.SalesByCategory, dto.CategorySalesDTO{
			Category: c.Category, UnitsSold: c.Units, Revenue: c.Revenue,
		})
	}
	return out, nil
}

// fillDays completa con cero los días sin ventas de la ventana.
func fillDays(rows []repository.DailyRevenue, since time.Time, days int) []dto.DailySalesDTO {
	byDay := make(map[string]repository.DailyRevenue, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r
	}
	out := make([]dto.DailySalesDTO, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format(dateLayout)
		r, ok := byDay[day]
		if !ok {
			out = append(out, dto.DailySalesDTO{Date: day, Revenue: decimal.Zero})
			continue
		}
		out = append(out, dto.DailySalesDTO{Date: day, Revenue: r.Revenue, Sales: r.Sales})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
