package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/aggregate"
)

var (
	_ repository.StoreRepository   = (*StoreRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
)

// StoreRepo tiendas en memoria.
type StoreRepo struct{ db *DB }

func (r *StoreRepo) Create(_ context.Context, s *entity.Store) error {
	defer r.db.lock(false)()
	for _, existing := range r.db.st.stores {
		if existing.Name == s.Name {
			return fmt.Errorf("%w: ya existe una tienda con nombre %q", domain.ErrConflict, s.Name)
		}
	}
	r.db.st.stores[s.ID] = *s
	return nil
}

func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	defer r.db.lock(false)()
	s, ok := r.db.st.stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *StoreRepo) GetByName(_ context.Context, name string) (*entity.Store, error) {
	defer r.db.lock(false)()
	for _, s := range r.db.st.stores {
		if s.Name == name {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *StoreRepo) List(_ context.Context) ([]*entity.Store, error) {
	defer r.db.lock(false)()
	out := make([]*entity.Store, 0, len(r.db.st.stores))
	for _, s := range r.db.st.stores {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ db *DB }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.db.lock(false)()
	for _, existing := range r.db.st.users {
		if existing.Username == u.Username {
			return fmt.Errorf("%w: el usuario %q ya existe", domain.ErrConflict, u.Username)
		}
	}
	r.db.st.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.db.lock(false)()
	u, ok := r.db.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	defer r.db.lock(false)()
	for _, u := range r.db.st.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	defer r.db.lock(false)()
	out := make([]*entity.User, 0)
	for _, u := range r.db.st.users {
		if role == "" || u.Role == role {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// ProductRepo catálogo en memoria.
type ProductRepo struct{ db *DB }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.db.lock(false)()
	for _, existing := range r.db.st.products {
		if existing.SKU == p.SKU {
			return fmt.Errorf("%w: el SKU %q ya existe", domain.ErrConflict, p.SKU)
		}
	}
	r.db.st.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.db.lock(false)()
	if _, ok := r.db.st.products[p.ID]; !ok {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, p.ID)
	}
	r.db.st.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.db.lock(false)()
	p, ok := r.db.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.db.lock(false)()
	for _, p := range r.db.st.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Search(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	defer r.db.lock(false)()
	out := make([]*entity.Product, 0)
	for _, p := range r.db.st.products {
		if aggregate.MatchProduct(p, f) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) Facets(_ context.Context) (repository.ProductFacets, error) {
	defer r.db.lock(false)()
	list := make([]entity.Product, 0, len(r.db.st.products))
	for _, p := range r.db.st.products {
		list = append(list, p)
	}
	return aggregate.Facets(list), nil
}
