// Package memstore backend en memoria de proceso. Se usa en desarrollo local
// (STORAGE_BACKEND=memory) y como doble de los repositorios en los tests.
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

type state struct {
	stores    map[string]entity.Store
	users     map[string]entity.User
	products  map[string]entity.Product
	inventory map[string]entity.InventoryRecord
	restocks  map[string]entity.RestockRequest
	shipments map[string]entity.Shipment // por restock_request_id
	sales     []entity.Sale
}

func newState() *state {
	return &state{
		stores:    map[string]entity.Store{},
		users:     map[string]entity.User{},
		products:  map[string]entity.Product{},
		inventory: map[string]entity.InventoryRecord{},
		restocks:  map[string]entity.RestockRequest{},
		shipments: map[string]entity.Shipment{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.stores {
		c.stores[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	for k, v := range s.restocks {
		c.restocks[k] = v
	}
	for k, v := range s.shipments {
		c.shipments[k] = v
	}
	c.sales = append([]entity.Sale(nil), s.sales...)
	return c
}

// DB base de datos en memoria. Un único mutex serializa las transacciones.
type DB struct {
	mu sync.Mutex
	st *state
}

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{st: newState()}
}

// lock toma el mutex salvo que la llamada ya ocurra dentro de TxRunner.Run.
func (db *DB) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	db.mu.Lock()
	return db.mu.Unlock
}

// Repositories agrupa los repositorios fuera de transacción.
type Repositories struct {
	Stores    *StoreRepo
	Users     *UserRepo
	Products  *ProductRepo
	Inventory *InventoryRepo
	Sales     *SaleRepo
	Restocks  *RestockRepo
	Shipments *ShipmentRepo
	Analytics *AnalyticsRepo
	Tx        *TxRunner
}

// Repos construye todos los repositorios sobre db.
func (db *DB) Repos() Repositories {
	return Repositories{
		Stores:    &StoreRepo{db: db},
		Users:     &UserRepo{db: db},
		Products:  &ProductRepo{db: db},
		Inventory: &InventoryRepo{db: db},
		Sales:     &SaleRepo{db: db},
		Restocks:  &RestockRepo{db: db},
		Shipments: &ShipmentRepo{db: db},
		Analytics: &AnalyticsRepo{db: db},
		Tx:        &TxRunner{db: db},
	}
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback con el mutex tomado; si falla, restaura el estado previo.
type TxRunner struct {
	db *DB
}

// Run ejecuta fn de forma atómica y aislada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	restockRepo repository.RestockRepository,
	shipmentRepo repository.ShipmentRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	snapshot := r.db.st.clone()
	err := fn(
		&InventoryRepo{db: r.db, inTx: true},
		&RestockRepo{db: r.db, inTx: true},
		&ShipmentRepo{db: r.db, inTx: true},
		&SaleRepo{db: r.db, inTx: true},
	)
	if err != nil {
		r.db.st = snapshot
		return err
	}
	return nil
}
