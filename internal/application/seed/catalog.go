package seed

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// Columnas del CSV de catálogo: sku;name;category;size;color;price;cost_price
const catalogColumns = 7

// ImportResult resumen de una importación de catálogo.
type ImportResult struct {
	Created int
	Updated int
}

// ImportCatalog carga productos desde un CSV separado por ';' y asegura su fila de
// inventario (cantidad 0, umbral por defecto) en storeID. Acepta UTF-8 o ISO-8859-1;
// una primera fila que empiece por "sku" se toma como encabezado.
func (s *Seeder) ImportCatalog(ctx context.Context, r io.Reader, storeID string) (*ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	res := &ImportResult{}
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("%w: línea %d: %v", domain.ErrValidation, line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		p, err := parseCatalogRow(rec)
		if err != nil {
			return res, fmt.Errorf("línea %d: %w", line, err)
		}
		created, err := s.upsertProduct(ctx, p)
		if err != nil {
			return res, fmt.Errorf("línea %d: %w", line, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		stored, err := s.products.GetBySKU(ctx, p.SKU)
		if err != nil {
			return res, err
		}
		if _, err := s.ensureInventory(ctx, storeID, stored.ID, 0, entity.DefaultLowStockThreshold); err != nil {
			return res, err
		}
	}
	return res, nil
}

func parseCatalogRow(rec []string) (entity.Product, error) {
	if len(rec) < 2 {
		return entity.Product{}, fmt.Errorf("%w: se esperan %d columnas, hay %d", domain.ErrValidation, catalogColumns, len(rec))
	}
	col := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	p := entity.Product{
		SKU:      col(0),
		Name:     col(1),
		Category: col(2),
		Size:     col(3),
		Color:    col(4),
	}
	if p.SKU == "" || p.Name == "" {
		return entity.Product{}, fmt.Errorf("%w: sku y name son obligatorios", domain.ErrValidation)
	}
	var err error
	if p.Price, err = parseMoney(col(5)); err != nil {
		return entity.Product{}, err
	}
	if p.CostPrice, err = parseMoney(col(6)); err != nil {
		return entity.Product{}, err
	}
	return p, nil
}

// parseMoney acepta punto o coma decimal; vacío = no informado.
func parseMoney(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("%w: precio inválido %q", domain.ErrValidation, s)
	}
	return &d, nil
}

// upsertProduct crea el SKU o actualiza los campos informados del existente.
func (s *Seeder) upsertProduct(ctx context.Context, p entity.Product) (bool, error) {
	existing, err := s.products.GetBySKU(ctx, p.SKU)
	if err != nil {
		return false, err
	}
	if existing == nil {
		_, _, err := s.ensureProduct(ctx, p)
		return err == nil, err
	}
	existing.Name = p.Name
	if p.Category != "" {
		existing.Category = p.Category
	}
	if p.Size != "" {
		existing.Size = p.Size
	}
	if p.Color != "" {
		existing.Color = p.Color
	}
	if p.Price != nil {
		existing.Price = p.Price
	}
	if p.CostPrice != nil {
		existing.CostPrice = p.CostPrice
	}
	existing.UpdatedAt = s.now()
	return false, s.products.Update(ctx, existing)
}
