// Package aggregate calcula en memoria las métricas de ventas para los backends clave-valor,
// que no disponen de GROUP BY.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// Catalog datos de referencia para enriquecer los agregados.
type Catalog struct {
	Products map[string]entity.Product
	Stores   map[string]entity.Store
}

// Since filtra ventas con Timestamp >= since (nil = todas).
func Since(sales []entity.Sale, since *time.Time) []entity.Sale {
	if since == nil {
		return sales
	}
	out := make([]entity.Sale, 0, len(sales))
	for _, s := range sales {
		if !s.Timestamp.Before(*since) {
			out = append(out, s)
		}
	}
	return out
}

// ByProduct agrupa por producto, ordenado por ingreso descendente (empate: SKU).
func ByProduct(sales []entity.Sale, cat Catalog) []repository.ProductSales {
	idx := make(map[string]*repository.ProductSales)
	for _, s := range sales {
		ps, ok := idx[s.ProductID]
		if !ok {
			p := cat.Products[s.ProductID]
			ps = &repository.ProductSales{ProductID: s.ProductID, SKU: p.SKU, Name: p.Name, Revenue: decimal.Zero}
			idx[s.ProductID] = ps
		}
		ps.Units += s.Quantity
		ps.Revenue = ps.Revenue.Add(s.TotalAmount)
	}
	out := make([]repository.ProductSales, 0, len(idx))
	for _, ps := range idx {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

// TopProducts primeros limit productos por ingreso.
func TopProducts(sales []entity.Sale, cat Catalog, since *time.Time, limit int) []repository.ProductSales {
	all := ByProduct(Since(sales, since), cat)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// UnitsSoldSince productos con al menos minUnits unidades desde since, por unidades descendente.
func UnitsSoldSince(sales []entity.Sale, cat Catalog, since time.Time, minUnits int) []repository.ProductSales {
	all := ByProduct(Since(sales, &since), cat)
	out := make([]repository.ProductSales, 0, len(all))
	for _, ps := range all {
		if ps.Units >= minUnits {
			out = append(out, ps)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Units > out[j].Units })
	return out
}

// ByStore agrupa por tienda, ingreso descendente.
func ByStore(sales []entity.Sale, cat Catalog) []repository.StoreSales {
	idx := make(map[string]*repository.StoreSales)
	for _, s := range sales {
		ss, ok := idx[s.StoreID]
		if !ok {
			ss = &repository.StoreSales{StoreID: s.StoreID, StoreName: cat.Stores[s.StoreID].Name, Revenue: decimal.Zero}
			idx[s.StoreID] = ss
		}
		ss.Units += s.Quantity
		ss.Revenue = ss.Revenue.Add(s.TotalAmount)
	}
	out := make([]repository.StoreSales, 0, len(idx))
	for _, ss := range idx {
		out = append(out, *ss)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].StoreName < out[j].StoreName
	})
	return out
}

// Daily agrupa por día UTC desde since, ascendente.
func Daily(sales []entity.Sale, since time.Time) []repository.DailyRevenue {
	idx := make(map[string]*repository.DailyRevenue)
	for _, s := range Since(sales, &since) {
		day := s.Timestamp.UTC().Format("2006-01-02")
		d, ok := idx[day]
		if !ok {
			d = &repository.DailyRevenue{Day: day, Revenue: decimal.Zero}
			idx[day] = d
		}
		d.Sales++
		d.Revenue = d.Revenue.Add(s.TotalAmount)
	}
	out := make([]repository.DailyRevenue, 0, len(idx))
	for _, d := range idx {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// ByCategory agrupa por categoría de producto ("" se reporta como "Uncategorized").
func ByCategory(sales []entity.Sale, cat Catalog) []repository.CategorySales {
	idx := make(map[string]*repository.CategorySales)
	for _, s := range sales {
		name := strings.TrimSpace(cat.Products[s.ProductID].Category)
		if name == "" {
			name = "Uncategorized"
		}
		cs, ok := idx[name]
		if !ok {
			cs = &repository.CategorySales{Category: name, Revenue: decimal.Zero}
			idx[name] = cs
		}
		cs.Units += s.Quantity
		cs.Revenue = cs.Revenue.Add(s.TotalAmount)
	}
	out := make([]repository.CategorySales, 0, len(idx))
	for _, cs := range idx {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Totals ingreso total y número de ventas.
func Totals(sales []entity.Sale) (decimal.Decimal, int) {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.TotalAmount)
	}
	return total, len(sales)
}

// MatchProduct aplica un ProductFilter a un producto (misma semántica que el backend SQL).
func MatchProduct(p entity.Product, f repository.ProductFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	if c := strings.ToLower(strings.TrimSpace(f.Color)); c != "" && !strings.Contains(strings.ToLower(p.Color), c) {
		return false
	}
	return true
}

// Facets valores distintos no vacíos, ordenados.
func Facets(products []entity.Product) repository.ProductFacets {
	cats, sizes, colors := map[string]struct{}{}, map[string]struct{}{}, map[string]struct{}{}
	for _, p := range products {
		if p.Category != "" {
			cats[p.Category] = struct{}{}
		}
		if p.Size != "" {
			sizes[p.Size] = struct{}{}
		}
		if p.Color != "" {
			colors[p.Color] = struct{}{}
		}
	}
	return repository.ProductFacets{Categories: sortedKeys(cats), Sizes: sortedKeys(sizes), Colors: sortedKeys(colors)}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
