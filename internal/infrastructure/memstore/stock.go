package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

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

// InventoryRepo inventario en memoria.
type InventoryRepo struct {
	db   *DB
	inTx bool
}

func (r *InventoryRepo) Create(_ context.Context, rec *entity.InventoryRecord) error {
	defer r.db.lock(r.inTx)()
	for _, existing := range r.db.st.inventory {
		if existing.StoreID == rec.StoreID && existing.ProductID == rec.ProductID {
			return fmt.Errorf("%w: ya existe inventario para el producto en la tienda", domain.ErrConflict)
		}
	}
	r.db.st.inventory[rec.ID] = *rec
	return nil
}

func (r *InventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	defer r.db.lock(r.inTx)()
	rec, ok := r.db.st.inventory[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// GetForUpdate equivale a GetByID: el mutex de TxRunner ya aísla la transacción.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryRepo) GetByStoreAndProduct(_ context.Context, storeID, productID string) (*entity.InventoryRecord, error) {
	defer r.db.lock(r.inTx)()
	for _, rec := range r.db.st.inventory {
		if rec.StoreID == storeID && rec.ProductID == productID {
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *InventoryRepo) Update(_ context.Context, rec *entity.InventoryRecord) error {
	defer r.db.lock(r.inTx)()
	if _, ok := r.db.st.inventory[rec.ID]; !ok {
		return fmt.Errorf("%w: inventario %s", domain.ErrNotFound, rec.ID)
	}
	if rec.Quantity < 0 || rec.LowStockThreshold < 0 {
		return fmt.Errorf("%w: cantidades negativas", domain.ErrValidation)
	}
	r.db.st.inventory[rec.ID] = *rec
	return nil
}

func (r *InventoryRepo) ListItems(_ context.Context, f repository.InventoryFilter) ([]repository.InventoryItem, error) {
	defer r.db.lock(r.inTx)()
	out := make([]repository.InventoryItem, 0)
	for _, rec := range r.db.st.inventory {
		if f.StoreID != "" && rec.StoreID != f.StoreID {
			continue
		}
		if f.ProductID != "" && rec.ProductID != f.ProductID {
			continue
		}
		if f.LowOnly && !rec.IsLow() {
			continue
		}
		out = append(out, repository.InventoryItem{
			Record:    rec,
			StoreName: r.db.st.stores[rec.StoreID].Name,
			Product:   r.db.st.products[rec.ProductID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StoreName != out[j].StoreName {
			return out[i].StoreName < out[j].StoreName
		}
		return out[i].Product.Name < out[j].Product.Name
	})
	return out, nil
}

// SaleRepo ventas en memoria (solo inserción).
type SaleRepo struct {
	db   *DB
	inTx bool
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	defer r.db.lock(r.inTx)()
	r.db.st.sales = append(r.db.st.sales, *s)
	return nil
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]repository.SaleLine, error) {
	defer r.db.lock(r.inTx)()
	out := make([]repository.SaleLine, 0)
	for _, s := range r.db.st.sales {
		if f.From != nil && s.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && !s.Timestamp.Before(*f.To) {
			continue
		}
		if f.StoreID != "" && s.StoreID != f.StoreID {
			continue
		}
		p := r.db.st.products[s.ProductID]
		out = append(out, repository.SaleLine{
			Sale:        s,
			ProductName: p.Name,
			SKU:         p.SKU,
			StoreName:   r.db.st.stores[s.StoreID].Name,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sale.Timestamp.After(out[j].Sale.Timestamp) })
	return out, nil
}

func (r *SaleRepo) Totals(_ context.Context) (decimal.Decimal, int, error) {
	defer r.db.lock(r.inTx)()
	total, count := aggregate.Totals(r.db.st.sales)
	return total, count, nil
}

// RestockRepo solicitudes en memoria.
type RestockRepo struct {
	db   *DB
	inTx bool
}

func (r *RestockRepo) Create(_ context.Context, req *entity.RestockRequest) error {
	defer r.db.lock(r.inTx)()
	stored := *req
	stored.Shipment = nil
	r.db.st.restocks[req.ID] = stored
	return nil
}

func (r *RestockRepo) get(id string) *entity.RestockRequest {
	req, ok := r.db.st.restocks[id]
	if !ok {
		return nil
	}
	if sh, ok := r.db.st.shipments[id]; ok {
		req.Shipment = &sh
	}
	return &req
}

func (r *RestockRepo) GetByID(_ context.Context, id string) (*entity.RestockRequest, error) {
	defer r.db.lock(r.inTx)()
	return r.get(id), nil
}

// GetForUpdate equivale a GetByID dentro de TxRunner.Run.
func (r *RestockRepo) GetForUpdate(ctx context.Context, id string) (*entity.RestockRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *RestockRepo) Update(_ context.Context, req *entity.RestockRequest) error {
	defer r.db.lock(r.inTx)()
	if _, ok := r.db.st.restocks[req.ID]; !ok {
		return fmt.Errorf("%w: solicitud %s", domain.ErrNotFound, req.ID)
	}
	stored := *req
	stored.Shipment = nil
	r.db.st.restocks[req.ID] = stored
	return nil
}

func (r *RestockRepo) List(_ context.Context, f repository.RestockFilter) ([]repository.RestockItem, error) {
	defer r.db.lock(r.inTx)()
	out := make([]repository.RestockItem, 0)
	for id, req := range r.db.st.restocks {
		if f.StoreID != "" && req.StoreID != f.StoreID {
			continue
		}
		if len(f.Statuses) > 0 && !contains(f.Statuses, req.Status) {
			continue
		}
		p := r.db.st.products[req.ProductID]
		out = append(out, repository.RestockItem{
			Request:     *r.get(id),
			ProductName: p.Name,
			SKU:         p.SKU,
			StoreName:   r.db.st.stores[req.StoreID].Name,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Request.CreatedAt.After(out[j].Request.CreatedAt) })
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

// ShipmentRepo despachos en memoria.
type ShipmentRepo struct {
	db   *DB
	inTx bool
}

func (r *ShipmentRepo) GetByRequestID(_ context.Context, requestID string) (*entity.Shipment, error) {
	defer r.db.lock(r.inTx)()
	sh, ok := r.db.st.shipments[requestID]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

func (r *ShipmentRepo) Upsert(_ context.Context, sh *entity.Shipment) error {
	defer r.db.lock(r.inTx)()
	if existing, ok := r.db.st.shipments[sh.RestockRequestID]; ok {
		sh.ID = existing.ID
	}
	r.db.st.shipments[sh.RestockRequestID] = *sh
	return nil
}

// AnalyticsRepo agregados sobre las ventas en memoria.
type AnalyticsRepo struct{ db *DB }

func (r *AnalyticsRepo) snapshot() ([]entity.Sale, aggregate.Catalog) {
	defer r.db.lock(false)()
	cat := aggregate.Catalog{
		Products: make(map[string]entity.Product, len(r.db.st.products)),
		Stores:   make(map[string]entity.Store, len(r.db.st.stores)),
	}
	for k, v := range r.db.st.products {
		cat.Products[k] = v
	}
	for k, v := range r.db.st.stores {
		cat.Stores[k] = v
	}
	return append([]entity.Sale(nil), r.db.st.sales...), cat
}

func (r *AnalyticsRepo) TopProducts(_ context.Context, since *time.Time, limit int) ([]repository.ProductSales, error) {
	sales, cat := r.snapshot()
	return aggregate.TopProducts(sales, cat, since, limit), nil
}

func (r *AnalyticsRepo) UnitsSoldSince(_ context.Context, since time.Time, minUnits int) ([]repository.ProductSales, error) {
	sales, cat := r.snapshot()
	return aggregate.UnitsSoldSince(sales, cat, since, minUnits), nil
}

func (r *AnalyticsRepo) SalesByStore(_ context.Context) ([]repository.StoreSales, error) {
	sales, cat := r.snapshot()
	return aggregate.ByStore(sales, cat), nil
}

func (r *AnalyticsRepo) DailyRevenueSince(_ context.Context, since time.Time) ([]repository.DailyRevenue, error) {
	sales, _ := r.snapshot()
	return aggregate.Daily(sales, since), nil
}

func (r *AnalyticsRepo) SalesByCategory(_ context.Context) ([]repository.CategorySales, error) {
	sales, cat := r.snapshot()
	return aggregate.ByCategory(sales, cat), nil
}
