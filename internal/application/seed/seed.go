// Package seed datos de demostración y carga de catálogo desde CSV.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stylelane-api/internal/application/usecase"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// Datos fijos de la demo.
const (
	FlagshipStoreName = "Flagship Store"
	flagshipLocation  = "Downtown"
)

type demoUser struct {
	username, password, role string
	supplierName, email      string
}

type demoProduct struct {
	sku, name, category, size, color, description string
	price, cost                                   string
	quantity, threshold                           int
}

var demoProducts = []demoProduct{
	{sku: "TEE-001", name: "Classic Tee", category: "Tops", size: "M", color: "White", description: "Classic cotton t-shirt", price: "29.99", cost: "12.00", quantity: 25, threshold: 5},
	{sku: "JNS-001", name: "Denim Jeans", category: "Bottoms", size: "32", color: "Blue", description: "Classic fit denim jeans", price: "79.99", cost: "35.00", quantity: 15, threshold: 5},
	{sku: "JKT-001", name: "Winter Jacket", category: "Outerwear", size: "L", color: "Black", description: "Warm winter jacket", price: "149.99", cost: "65.00", quantity: 8, threshold: 3},
}

// Seeder escribe directamente en los repositorios: la carga inicial no pasa por el
// flujo de reposición ni por ventas.
type Seeder struct {
	stores    repository.StoreRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	now       func() time.Time
}

// NewSeeder construye el seeder.
func NewSeeder(
	stores repository.StoreRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
) *Seeder {
	return &Seeder{stores: stores, users: users, products: products, inventory: inventory, now: time.Now}
}

// Result resumen de lo creado en una corrida.
type Result struct {
	StoreID         string
	UsersCreated    int
	ProductsCreated int
}

// Run crea admin, Flagship Store con su manager, un supplier y tres productos.
// Es idempotente: lo que ya existe (por username, nombre de tienda o SKU) no se toca.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	store, err := s.ensureStore(ctx, FlagshipStoreName, flagshipLocation)
	if err != nil {
		return nil, err
	}
	res.StoreID = store.ID

	users := []demoUser{
		{username: "admin", password: "admin123", role: entity.RoleAdmin},
		{username: "manager1", password: "manager123", role: entity.RoleManager},
		{username: "supplier1", password: "supplier123", role: entity.RoleSupplier, supplierName: "Universal Fashions", email: "contact@supplier.test"},
	}
	for _, u := range users {
		created, err := s.ensureUser(ctx, u, store.ID)
		if err != nil {
			return nil, err
		}
		if created {
			res.UsersCreated++
		}
	}

	for _, p := range demoProducts {
		price := decimal.RequireFromString(p.price)
		cost := decimal.RequireFromString(p.cost)
		product, created, err := s.ensureProduct(ctx, entity.Product{
			SKU: p.sku, Name: p.name, Category: p.category, Size: p.size, Color: p.color,
			Description: p.description, Price: &price, CostPrice: &cost,
		})
		if err != nil {
			return nil, err
		}
		if created {
			res.ProductsCreated++
		}
		if _, err := s.ensureInventory(ctx, store.ID, product.ID, p.quantity, p.threshold); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("store_id", res.StoreID).
		Int("users_created", res.UsersCreated).
		Int("products_created", res.ProductsCreated).
		Msg("seed de demostración aplicado")
	return res, nil
}

func (s *Seeder) ensureStore(ctx context.Context, name, location string) (*entity.Store, error) {
	store, err := s.stores.GetByName(ctx, name)
	if err != nil || store != nil {
		return store, err
	}
	now := s.now()
	store = &entity.Store{ID: uuid.New().String(), Name: name, Location: location, CreatedAt: now, UpdatedAt: now}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("seed tienda %q: %w", name, err)
	}
	return store, nil
}

func (s *Seeder) ensureUser(ctx context.Context, u demoUser, storeID string) (bool, error) {
	existing, err := s.users.GetByUsername(ctx, u.username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := usecase.HashPassword(u.password)
	if err != nil {
		return false, err
	}
	now := s.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     u.username,
		PasswordHash: hash,
		Role:         u.role,
		SupplierName: u.supplierName,
		ContactEmail: u.email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if u.role == entity.RoleManager {
		user.StoreID = storeID
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("seed usuario %q: %w", u.username, err)
	}
	return true, nil
}

// ensureProduct crea el producto si el SKU no existe; si existe lo devuelve sin cambios.
func (s *Seeder) ensureProduct(ctx context.Context, p entity.Product) (*entity.Product, bool, error) {
	existing, err := s.products.GetBySKU(ctx, p.SKU)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	now := s.now()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.products.Create(ctx, &p); err != nil {
		return nil, false, fmt.Errorf("seed producto %q: %w", p.SKU, err)
	}
	return &p, true, nil
}

func (s *Seeder) ensureInventory(ctx context.Context, storeID, productID string, quantity, threshold int) (*entity.InventoryRecord, error) {
	rec, err := s.inventory.GetByStoreAndProduct(ctx, storeID, productID)
	if err != nil || rec != nil {
		return rec, err
	}
	rec = &entity.InventoryRecord{
		ID:                uuid.New().String(),
		StoreID:           storeID,
		ProductID:         productID,
		Quantity:          quantity,
		LowStockThreshold: threshold,
		UpdatedAt:         s.now(),
	}
	if err := s.inventory.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("seed inventario: %w", err)
	}
	return rec, nil
}
