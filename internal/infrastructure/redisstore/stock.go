package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/aggregate"
)

var (
	_ repository.InventoryRepository = (*InventoryRepo)(nil)
	_ repository.SaleRepository      = (*SaleRepo)(nil)
	_ repository.RestockRepository   = (*RestockRepo)(nil)
	_ repository.ShipmentRepository  = (*ShipmentRepo)(nil)
	_ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)
)

// ── Inventario ────────────────────────────────────────────────────────────────

// InventoryRepo inventory:<id>, set inventory, inventory:pair:<store>:<product> → id.
type InventoryRepo struct{ s *session }

func (r *InventoryRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	release, err := r.s.claim(ctx, r.s.key("inventory", "pair", rec.StoreID, rec.ProductID), rec.ID, "inventario del producto en la tienda")
	if err != nil {
		return err
	}
	index := r.s.key("inventory")
	if err := r.s.save(ctx, r.s.key("inventory", rec.ID), rec, func(pipe redis.Pipeliner) {
		pipe.SAdd(ctx, index, rec.ID)
	}); err != nil {
		release()
		return err
	}
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	ok, err := r.s.load(ctx, r.s.key("inventory", id), &rec)
	if err != nil || !ok {
		return nil, err
	}
	return &rec, nil
}

// GetForUpdate dentro de una tx deja la clave observada hasta el EXEC.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryRepo) GetByStoreAndProduct(ctx context.Context, storeID, productID string) (*entity.InventoryRecord, error) {
	id, err := r.s.lookup(ctx, r.s.key("inventory", "pair", storeID, productID))
	if err != nil || id == "" {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *InventoryRepo) Update(ctx context.Context, rec *entity.InventoryRecord) error {
	existing, err := r.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: inventario %s", domain.ErrNotFound, rec.ID)
	}
	return r.s.save(ctx, r.s.key("inventory", rec.ID), rec, nil)
}

func (r *InventoryRepo) ListItems(ctx context.Context, f repository.InventoryFilter) ([]repository.InventoryItem, error) {
	ids, err := r.s.members(ctx, r.s.key("inventory"))
	if err != nil {
		return nil, err
	}
	cat, err := r.s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]repository.InventoryItem, 0)
	err = r.s.loadMany(ctx, r.s.keys("inventory", ids), func(raw []byte) error {
		var rec entity.InventoryRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if f.StoreID != "" && rec.StoreID != f.StoreID {
			return nil
		}
		if f.ProductID != "" && rec.ProductID != f.ProductID {
			return nil
		}
		if f.LowOnly && !rec.IsLow() {
			return nil
		}
		out = append(out, repository.InventoryItem{
			Record:    rec,
			StoreName: cat.Stores[rec.StoreID].Name,
			Product:   cat.Products[rec.ProductID],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StoreName != out[j].StoreName {
			return out[i].StoreName < out[j].StoreName
		}
		return out[i].Product.Name < out[j].Product.Name
	})
	return out, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// SaleRepo sale:<id> y zset sales con score = timestamp en microsegundos.
type SaleRepo struct{ s *session }

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	index := r.s.key("sales")
	score := float64(sale.Timestamp.UnixMicro())
	return r.s.save(ctx, r.s.key("sale", sale.ID), sale, func(pipe redis.Pipeliner) {
		pipe.ZAdd(ctx, index, redis.Z{Score: score, Member: sale.ID})
	})
}

// rangeSales ventas en [from, to), más recientes primero.
func (r *SaleRepo) rangeSales(ctx context.Context, from, to *time.Time) ([]entity.Sale, error) {
	by := &redis.ZRangeBy{Min: "-inf", Max: "+inf"}
	if from != nil {
		by.Min = strconv.FormatInt(from.UnixMicro(), 10)
	}
	if to != nil {
		by.Max = "(" + strconv.FormatInt(to.UnixMicro(), 10)
	}
	ids, err := r.s.rdb.ZRevRangeByScore(ctx, r.s.key("sales"), by).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrevrangebyscore: %w", err)
	}
	out := make([]entity.Sale, 0, len(ids))
	err = r.s.loadMany(ctx, r.s.keys("sale", ids), func(raw []byte) error {
		var sale entity.Sale
		if err := json.Unmarshal(raw, &sale); err != nil {
			return err
		}
		out = append(out, sale)
		return nil
	})
	return out, err
}

func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]repository.SaleLine, error) {
	sales, err := r.rangeSales(ctx, f.From, f.To)
	if err != nil {
		return nil, err
	}
	cat, err := r.s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]repository.SaleLine, 0, len(sales))
	for _, sale := range sales {
		if f.StoreID != "" && sale.StoreID != f.StoreID {
			continue
		}
		p := cat.Products[sale.ProductID]
		out = append(out, repository.SaleLine{
			Sale:        sale,
			ProductName: p.Name,
			SKU:         p.SKU,
			StoreName:   cat.Stores[sale.StoreID].Name,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sale.Timestamp.After(out[j].Sale.Timestamp) })
	return out, nil
}

func (r *SaleRepo) Totals(ctx context.Context) (decimal.Decimal, int, error) {
	sales, err := r.rangeSales(ctx, nil, nil)
	if err != nil {
		return decimal.Zero, 0, err
	}
	total, count := aggregate.Totals(sales)
	return total, count, nil
}

// ── Reposición ────────────────────────────────────────────────────────────────

// RestockRepo restock:<id> y set restocks.
type RestockRepo struct{ s *session }

func (r *RestockRepo) Create(ctx context.Context, req *entity.RestockRequest) error {
	stored := *req
	stored.Shipment = nil
	index := r.s.key("restocks")
	return r.s.save(ctx, r.s.key("restock", req.ID), stored, func(pipe redis.Pipeliner) {
		pipe.SAdd(ctx, index, req.ID)
	})
}

func (r *RestockRepo) GetByID(ctx context.Context, id string) (*entity.RestockRequest, error) {
	var req entity.RestockRequest
	ok, err := r.s.load(ctx, r.s.key("restock", id), &req)
	if err != nil || !ok {
		return nil, err
	}
	sh, err := (&ShipmentRepo{s: r.s}).GetByRequestID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Shipment = sh
	return &req, nil
}

// GetForUpdate dentro de una tx deja la clave observada hasta el EXEC.
func (r *RestockRepo) GetForUpdate(ctx context.Context, id string) (*entity.RestockRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *RestockRepo) Update(ctx context.Context, req *entity.RestockRequest) error {
	var existing entity.RestockRequest
	ok, err := r.s.load(ctx, r.s.key("restock", req.ID), &existing)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: solicitud %s", domain.ErrNotFound, req.ID)
	}
	stored := *req
	stored.Shipment = nil
	return r.s.save(ctx, r.s.key("restock", req.ID), stored, nil)
}

func (r *RestockRepo) List(ctx context.Context, f repository.RestockFilter) ([]repository.RestockItem, error) {
	ids, err := r.s.members(ctx, r.s.key("restocks"))
	if err != nil {
		return nil, err
	}
	requests := make([]entity.RestockRequest, 0, len(ids))
	err = r.s.loadMany(ctx, r.s.keys("restock", ids), func(raw []byte) error {
		var req entity.RestockRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return err
		}
		if f.StoreID != "" && req.StoreID != f.StoreID {
			return nil
		}
		if len(f.Statuses) > 0 && !contains(f.Statuses, req.Status) {
			return nil
		}
		requests = append(requests, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	shipments := make(map[string]entity.Shipment, len(requests))
	shipmentKeys := make([]string, 0, len(requests))
	for _, req := range requests {
		shipmentKeys = append(shipmentKeys, r.s.key("shipment", req.ID))
	}
	err = r.s.loadMany(ctx, shipmentKeys, func(raw []byte) error {
		var sh entity.Shipment
		if err := json.Unmarshal(raw, &sh); err != nil {
			return err
		}
		shipments[sh.RestockRequestID] = sh
		return nil
	})
	if err != nil {
		return nil, err
	}

	cat, err := r.s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]repository.RestockItem, 0, len(requests))
	for _, req := range requests {
		if sh, ok := shipments[req.ID]; ok {
			sh := sh
			req.Shipment = &sh
		}
		p := cat.Products[req.ProductID]
		out = append(out, repository.RestockItem{
			Request:     req,
			ProductName: p.Name,
			SKU:         p.SKU,
			StoreName:   cat.Stores[req.StoreID].Name,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Request.CreatedAt.After(out[j].Request.CreatedAt) })
	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ShipmentRepo shipment:<restock_request_id>.
type ShipmentRepo struct{ s *session }

func (r *ShipmentRepo) GetByRequestID(ctx context.Context, requestID string) (*entity.Shipment, error) {
	var sh entity.Shipment
	ok, err := r.s.load(ctx, r.s.key("shipment", requestID), &sh)
	if err != nil || !ok {
		return nil, err
	}
	return &sh, nil
}

func (r *ShipmentRepo) Upsert(ctx context.Context, sh *entity.Shipment) error {
	return r.s.save(ctx, r.s.key("shipment", sh.RestockRequestID), sh, nil)
}

// ── Analítica ─────────────────────────────────────────────────────────────────

// AnalyticsRepo agregados calculados en memoria sobre todas las ventas.
type AnalyticsRepo struct{ s *session }

func (r *AnalyticsRepo) load(ctx context.Context) ([]entity.Sale, aggregate.Catalog, error) {
	sales, err := (&SaleRepo{s: r.s}).rangeSales(ctx, nil, nil)
	if err != nil {
		return nil, aggregate.Catalog{}, err
	}
	cat, err := r.s.catalog(ctx)
	return sales, cat, err
}

func (r *AnalyticsRepo) TopProducts(ctx context.Context, since *time.Time, limit int) ([]repository.ProductSales, error) {
	sales, cat, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.TopProducts(sales, cat, since, limit), nil
}

func (r *AnalyticsRepo) UnitsSoldSince(ctx context.Context, since time.Time, minUnits int) ([]repository.ProductSales, error) {
	sales, cat, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.UnitsSoldSince(sales, cat, since, minUnits), nil
}

func (r *AnalyticsRepo) SalesByStore(ctx context.Context) ([]repository.StoreSales, error) {
	sales, cat, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.ByStore(sales, cat), nil
}

func (r *AnalyticsRepo) DailyRevenueSince(ctx context.Context, since time.Time) ([]repository.DailyRevenue, error) {
	sales, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Daily(sales, since), nil
}

func (r *AnalyticsRepo) SalesByCategory(ctx context.Context) ([]repository.CategorySales, error) {
	sales, cat, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.ByCategory(sales, cat), nil
}
