package aggregate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/aggregate"
)

func sale(product, store string, qty int, price string, at time.Time) entity.Sale {
	p := decimal.RequireFromString(price)
	return entity.Sale{ProductID: product, StoreID: store, Quantity: qty, UnitPrice: p, TotalAmount: p.Mul(decimal.NewFromInt(int64(qty))), Timestamp: at}
}

func TestAggregados(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cat := aggregate.Catalog{
		Products: map[string]entity.Product{
			"p1": {ID: "p1", SKU: "TEE-001", Name: "Classic Tee", Category: "Tops"},
			"p2": {ID: "p2", SKU: "JNS-001", Name: "Denim Jeans", Category: "Bottoms"},
		},
		Stores: map[string]entity.Store{"s1": {ID: "s1", Name: "Flagship Store"}},
	}
	sales := []entity.Sale{
		sale("p1", "s1", 3, "29.99", now.AddDate(0, 0, -40)),
		sale("p1", "s1", 4, "29.99", now.AddDate(0, 0, -1)),
		sale("p2", "s1", 2, "79.99", now),
	}

	top := aggregate.TopProducts(sales, cat, nil, 10)
	require.Len(t, top, 2)
	assert.Equal(t, "TEE-001", top[0].SKU)
	assert.Equal(t, 7, top[0].Units)
	assert.True(t, decimal.RequireFromString("209.93").Equal(top[0].Revenue))

	since := now.AddDate(0, 0, -30)
	recent := aggregate.TopProducts(sales, cat, &since, 1)
	require.Len(t, recent, 1)
	assert.Equal(t, "JNS-001", recent[0].SKU)

	fast := aggregate.UnitsSoldSince(sales, cat, since, 4)
	require.Len(t, fast, 1)
	assert.Equal(t, "p1", fast[0].ProductID)

	byStore := aggregate.ByStore(sales, cat)
	require.Len(t, byStore, 1)
	assert.Equal(t, "Flagship Store", byStore[0].StoreName)
	assert.Equal(t, 9, byStore[0].Units)

	daily := aggregate.Daily(sales, now.AddDate(0, 0, -6))
	require.Len(t, daily, 2)
	assert.Equal(t, "2026-03-09", daily[0].Day)
	assert.Equal(t, "2026-03-10", daily[1].Day)

	cats := aggregate.ByCategory(sales, cat)
	require.Len(t, cats, 2)
	assert.Equal(t, "Tops", cats[0].Category)

	total, count := aggregate.Totals(sales)
	assert.Equal(t, 3, count)
	assert.True(t, decimal.RequireFromString("369.91").Equal(total))
}

func TestMatchProductYFacets(t *testing.T) {
	products := []entity.Product{
		{SKU: "TEE-001", Name: "Classic Tee", Category: "Tops", Size: "M", Color: "White"},
		{SKU: "JKT-001", Name: "Winter Jacket", Category: "Outerwear", Size: "L", Color: "Black", Description: "warm"},
	}
	assert.True(t, aggregate.MatchProduct(products[0], repository.ProductFilter{Query: "tee"}))
	assert.True(t, aggregate.MatchProduct(products[1], repository.ProductFilter{Query: "WARM"}))
	assert.True(t, aggregate.MatchProduct(products[1], repository.ProductFilter{Color: "bla"}))
	assert.False(t, aggregate.MatchProduct(products[1], repository.ProductFilter{Size: "l"}))
	assert.False(t, aggregate.MatchProduct(products[0], repository.ProductFilter{Category: "Outerwear"}))

	f := aggregate.Facets(products)
	assert.Equal(t, []string{"Outerwear", "Tops"}, f.Categories)
	assert.Equal(t, []string{"L", "M"}, f.Sizes)
	assert.Equal(t, []string{"Black", "White"}, f.Colors)
}
