// Package pdf genera los documentos imprimibles con Maroto v2: el reporte de
// ventas por período y la etiqueta de producto con código de barras.
//
// Layout del reporte (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: StyleLane + título   │  Período + fecha generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tienda | SKU | Producto | Cant | P.Unit | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades / Ingreso total                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stylelane-api/internal/application/analytics"
	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/application/usecase"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var (
	_ analytics.SalesReportPDFGenerator = (*MarotoPDFGenerator)(nil)
	_ usecase.LabelGenerator            = (*MarotoPDFGenerator)(nil)
)

// MarotoPDFGenerator implementa el reporte de ventas y las etiquetas usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSalesReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSalesReport(report *dto.SalesReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor("StyleLane", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportHeaderRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Lines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas en el período.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableDetailRows(report.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateLabel genera la etiqueta del producto: nombre, variante, precio y código de barras del SKU.
func (g *MarotoPDFGenerator) GenerateLabel(p *entity.Product) ([]byte, error) {
	if p == nil || strings.TrimSpace(p.SKU) == "" {
		return nil, fmt.Errorf("pdf: etiqueta sin SKU")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta "+p.SKU, true).
		Build()

	m := maroto.New(cfg)

	variant := strings.Join(nonEmptyParts(p.Size, p.Color), " / ")
	m.AddRows(row.New(16).Add(col.New(12).Add(
		text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(variant, "-"), props.Text{Size: 9, Top: 9, Color: colorGray}),
	)))
	price := "-"
	if p.Price != nil {
		price = "$" + formatMoney(*p.Price)
	}
	m.AddRows(row.New(12).Add(col.New(12).Add(
		text.New(price, props.Text{Style: fontstyle.Bold, Size: 16, Align: align.Right, Top: 1}),
	)))
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(30).Add(
		col.New(8).Add(code.NewBar(p.SKU, props.Barcode{Percent: 90, Center: true})),
		col.New(4).Add(code.NewQr(p.SKU, props.Rect{Percent: 90, Center: true})),
	))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(p.SKU, props.Text{Size: 8, Align: align.Center, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// reportHeaderRow: título (izq) y período + fecha de generación (der).
func reportHeaderRow(report *dto.SalesReportResponse) core.Row {
	period := fmt.Sprintf("%s a %s", nonEmpty(report.StartDate, "inicio"), nonEmpty(report.EndDate, "hoy"))
	return row.New(18).Add(
		col.New(7).Add(
			text.New("StyleLane", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ventas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Fecha", 2, align.Left),
		h("Tienda", 2, align.Left),
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por venta.
func tableDetailRows(lines []dto.SalesReportLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			cell(l.Timestamp.Format("2006-01-02 15:04"), 2, align.Left),
			cell(l.StoreName, 2, align.Left),
			cell(l.SKU, 2, align.Left),
			cell(l.ProductName, 3, align.Left),
			cell(fmt.Sprintf("%d", l.Quantity), 1, align.Center),
			cell("$"+formatMoney(l.TotalAmount), 2, align.Right),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(report *dto.SalesReportResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 6,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 6,
		})
	}

	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label(fmt.Sprintf("Ventas: %d  Unidades:", len(report.Lines))),
			grandLabel("INGRESO TOTAL:"),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", report.TotalUnits)),
			grandValue("$"+formatMoney(report.TotalRevenue)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonEmptyParts(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// formatMoney formatea con dos decimales y comas de miles.
// Ej: 25000 → "25,000.00", -1234.5 → "-1,234.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
