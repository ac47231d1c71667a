package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":           "0.00",
		"999.5":       "999.50",
		"25000":       "25,000.00",
		"1234567.891": "1,234,567.89",
		"-1234.5":     "-1,234.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateSalesReport_DevuelvePDF(t *testing.T) {
	report := &dto.SalesReportResponse{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		Lines: []dto.SalesReportLine{{
			SaleID: "s1", Timestamp: time.Now(), StoreName: "Flagship Store", SKU: "TEE-001",
			ProductName: "Classic Tee", Quantity: 2,
			UnitPrice: decimal.RequireFromString("29.99"), TotalAmount: decimal.RequireFromString("59.98"),
		}},
		TotalUnits:   2,
		TotalRevenue: decimal.RequireFromString("59.98"),
		GeneratedAt:  time.Now(),
	}

	b, err := NewMarotoPDFGenerator().GenerateSalesReport(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateSalesReport_SinVentas(t *testing.T) {
	b, err := NewMarotoPDFGenerator().GenerateSalesReport(&dto.SalesReportResponse{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateLabel(t *testing.T) {
	price := decimal.RequireFromString("29.99")
	p := &entity.Product{ID: "p1", Name: "Classic Tee", SKU: "TEE-001", Size: "M", Color: "White", Price: &price}

	b, err := NewMarotoPDFGenerator().GenerateLabel(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	_, err = NewMarotoPDFGenerator().GenerateLabel(&entity.Product{Name: "sin sku"})
	assert.Error(t, err)
}
