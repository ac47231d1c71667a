package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stylelane-api/internal/application/analytics"
	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/application/inventory"
)

// AnalyticsHandler endpoints de analítica, reportes y recomendaciones (cualquier rol autenticado).
type AnalyticsHandler struct {
	analytics       *appanalytics.AnalyticsUseCase
	reports         *appanalytics.ReportUseCase
	recommendations *inventory.RecommendationUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(
	analytics *appanalytics.AnalyticsUseCase,
	reports *appanalytics.ReportUseCase,
	recommendations *inventory.RecommendationUseCase,
) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, reports: reports, recommendations: recommendations}
}

// Get godoc
// @Summary      Analítica de ventas
// @Description  Top 10 productos por ingreso, ventas por tienda, ingreso diario de los últimos 7 días,
// @Description  ventas por categoría y totales.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AnalyticsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) Get(c *fiber.Ctx) error {
	out, err := h.analytics.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesReport godoc
// @Summary      Reporte de ventas por período
// @Description  Fechas inválidas se ignoran. end_date es inclusivo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin inclusivo (YYYY-MM-DD)"
// @Success      200  {object}  dto.SalesReportResponse
// @Router       /api/reports/sales [get]
func (h *AnalyticsHandler) SalesReport(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.reports.SalesReport(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesReportPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin inclusivo (YYYY-MM-DD)"
// @Success      200  {file}  file
// @Router       /api/reports/sales/pdf [get]
func (h *AnalyticsHandler) SalesReportPDF(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	pdf, err := h.reports.SalesReportPDF(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales-report.pdf"`)
	return c.Send(pdf)
}

// Recommendations godoc
// @Summary      Recomendaciones de reposición
// @Description  Productos con 5 o más unidades vendidas en 30 días y stock bajo en alguna tienda,
// @Description  más el top 5 por ingreso del mismo período.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecommendationsResponse
// @Router       /api/recommendations [get]
func (h *AnalyticsHandler) Recommendations(c *fiber.Ctx) error {
	out, err := h.recommendations.Generate(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
