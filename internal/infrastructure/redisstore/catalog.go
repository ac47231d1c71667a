package redisstore

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/aggregate"
)

var (
	_ repository.StoreRepository   = (*StoreRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
)

// ── Tiendas ───────────────────────────────────────────────────────────────────

// StoreRepo tiendas: store:<id>, set stores, store:name:<nombre> → id.
type StoreRepo struct{ s *session }

func (r *StoreRepo) Create(ctx context.Context, st *entity.Store) error {
	release, err := r.s.claim(ctx, r.s.key("store", "name", st.Name), st.ID, "tienda "+st.Name)
	if err != nil {
		return err
	}
	index := r.s.key("stores")
	if err := r.s.save(ctx, r.s.key("store", st.ID), st, func(pipe redis.Pipeliner) {
		pipe.SAdd(ctx, index, st.ID)
	}); err != nil {
		release()
		return err
	}
	return nil
}

func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	var st entity.Store
	ok, err := r.s.load(ctx, r.s.key("store", id), &st)
	if err != nil || !ok {
		return nil, err
	}
	return &st, nil
}

func (r *StoreRepo) GetByName(ctx context.Context, name string) (*entity.Store, error) {
	id, err := r.s.lookup(ctx, r.s.key("store", "name", name))
	if err != nil || id == "" {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	all, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Store, 0, len(all))
	for i := range all {
		out = append(out, &all[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *StoreRepo) all(ctx context.Context) ([]entity.Store, error) {
	ids, err := r.s.members(ctx, r.s.key("stores"))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Store, 0, len(ids))
	err = r.s.loadMany(ctx, r.s.keys("store", ids), func(raw []byte) error {
		var st entity.Store
		if err := json.Unmarshal(raw, &st); err != nil {
			return err
		}
		out = append(out, st)
		return nil
	})
	return out, err
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// UserRepo usuarios: user:<id>, set users, user:username:<u> → id.
type UserRepo struct{ s *session }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	release, err := r.s.claim(ctx, r.s.key("user", "username", u.Username), u.ID, "usuario "+u.Username)
	if err != nil {
		return err
	}
	index := r.s.key("users")
	if err := r.s.save(ctx, r.s.key("user", u.ID), u, func(pipe redis.Pipeliner) {
		pipe.SAdd(ctx, index, u.ID)
	}); err != nil {
		release()
		return err
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	ok, err := r.s.load(ctx, r.s.key("user", id), &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	id, err := r.s.lookup(ctx, r.s.key("user", "username", username))
	if err != nil || id == "" {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	ids, err := r.s.members(ctx, r.s.key("users"))
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(ids))
	err = r.s.loadMany(ctx, r.s.keys("user", ids), func(raw []byte) error {
		var u entity.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return err
		}
		if role == "" || u.Role == role {
			out = append(out, &u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductRepo catálogo: product:<id>, set products, product:sku:<sku> → id.
type ProductRepo struct{ s *session }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	release, err := r.s.claim(ctx, r.s.key("product", "sku", p.SKU), p.ID, "SKU "+p.SKU)
	if err != nil {
		return err
	}
	index := r.s.key("products")
	if err := r.s.save(ctx, r.s.key("product", p.ID), p, func(pipe redis.Pipeliner) {
		pipe.SAdd(ctx, index, p.ID)
	}); err != nil {
		release()
		return err
	}
	return nil
}

// Update reescribe el documento; el SKU no cambia.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.s.save(ctx, r.s.key("product", p.ID), p, nil)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	ok, err := r.s.load(ctx, r.s.key("product", id), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	id, err := r.s.lookup(ctx, r.s.key("product", "sku", sku))
	if err != nil || id == "" {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Search(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	all, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0)
	for i := range all {
		if aggregate.MatchProduct(all[i], f) {
			out = append(out, &all[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) Facets(ctx context.Context) (repository.ProductFacets, error) {
	all, err := r.all(ctx)
	if err != nil {
		return repository.ProductFacets{}, err
	}
	return aggregate.Facets(all), nil
}

func (r *ProductRepo) all(ctx context.Context) ([]entity.Product, error) {
	ids, err := r.s.members(ctx, r.s.key("products"))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(ids))
	err = r.s.loadMany(ctx, r.s.keys("product", ids), func(raw []byte) error {
		var p entity.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

// catalog carga productos y tiendas para enriquecer listados y agregados.
func (s *session) catalog(ctx context.Context) (aggregate.Catalog, error) {
	cat := aggregate.Catalog{Products: map[string]entity.Product{}, Stores: map[string]entity.Store{}}
	products, err := (&ProductRepo{s: s}).all(ctx)
	if err != nil {
		return cat, err
	}
	for _, p := range products {
		cat.Products[p.ID] = p
	}
	stores, err := (&StoreRepo{s: s}).all(ctx)
	if err != nil {
		return cat, err
	}
	for _, st := range stores {
		cat.Stores[st.ID] = st
	}
	return cat, nil
}
