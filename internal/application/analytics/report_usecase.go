package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// SalesReportPDFGenerator renderiza el reporte de ventas (implementación en infrastructure/pdf).
type SalesReportPDFGenerator interface {
	GenerateSalesReport(report *dto.SalesReportResponse) ([]byte, error)
}

// ReportUseCase reporte de ventas por período, en JSON o PDF.
type ReportUseCase struct {
	saleRepo repository.SaleRepository
	pdf      SalesReportPDFGenerator
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(saleRepo repository.SaleRepository, pdf SalesReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{saleRepo: saleRepo, pdf: pdf, now: time.Now}
}

// SalesReport lista las ventas del período (más recientes primero) con totales.
// Fechas YYYY-MM-DD; la fecha final es inclusiva; una fecha inválida se ignora.
func (uc *ReportUseCase) SalesReport(ctx context.Context, req dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	filter, start, end := parsePeriod(req.StartDate, req.EndDate)
	lines, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	out := &dto.SalesReportResponse{
		StartDate:    start,
		EndDate:      end,
		Lines:        make([]dto.SalesReportLine, 0, len(lines)),
		TotalRevenue: decimal.Zero,
		GeneratedAt:  uc.now().UTC(),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.SalesReportLine{
			SaleID:      l.Sale.ID,
			Timestamp:   l.Sale.Timestamp,
			StoreName:   l.StoreName,
			SKU:         l.SKU,
			ProductName: l.ProductName,
			Quantity:    l.Sale.Quantity,
			UnitPrice:   l.Sale.UnitPrice,
			TotalAmount: l.Sale.TotalAmount,
		})
		out.TotalUnits += l.Sale.Quantity
		out.TotalRevenue = out.TotalRevenue.Add(l.Sale.TotalAmount)
	}
	return out, nil
}

// SalesReportPDF genera el mismo reporte en PDF.
func (uc *ReportUseCase) SalesReportPDF(ctx context.Context, req dto.SalesReportRequest) ([]byte, error) {
	report, err := uc.SalesReport(ctx, req)
	if err != nil {
		return nil, err
	}
	b, err := uc.pdf.GenerateSalesReport(report)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas pdf: %w", err)
	}
	return b, nil
}

// parsePeriod traduce las fechas a un filtro [From, To). Devuelve las fechas aceptadas.
func parsePeriod(startStr, endStr string) (repository.SaleFilter, string, string) {
	var f repository.SaleFilter
	var start, end string
	if t, err := time.Parse(dateLayout, strings.TrimSpace(startStr)); err == nil {
		f.From = &t
		start = t.Format(dateLayout)
	}
	if t, err := time.Parse(dateLayout, strings.TrimSpace(endStr)); err == nil {
		to := t.AddDate(0, 0, 1)
		f.To = &to
		end = t.Format(dateLayout)
	}
	return f, start, end
}
