// Package redisstore backend clave-valor sobre Redis. Cada entidad se guarda como
// documento JSON bajo <prefijo>:<entidad>:<id>, con sets de índice y claves de
// unicidad reservadas con SETNX. Las transacciones usan WATCH + MULTI/EXEC con
// reintentos optimistas.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
	"github.com/jhoicas/stylelane-api/pkg/config"
)

// DefaultPrefix prefijo de todas las claves.
const DefaultPrefix = "stylelane"

const defaultTxRetries = 10

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// DB cliente, prefijo de claves y política de reintentos.
type DB struct {
	client     *redis.Client
	prefix     string
	maxRetries int
}

// NewDB construye el backend. prefix vacío usa DefaultPrefix; maxRetries <= 0 usa 10.
func NewDB(client *redis.Client, prefix string, maxRetries int) *DB {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if maxRetries <= 0 {
		maxRetries = defaultTxRetries
	}
	return &DB{client: client, prefix: prefix, maxRetries: maxRetries}
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
	s := db.direct()
	return Repositories{
		Stores:    &StoreRepo{s: s},
		Users:     &UserRepo{s: s},
		Products:  &ProductRepo{s: s},
		Inventory: &InventoryRepo{s: s},
		Sales:     &SaleRepo{s: s},
		Restocks:  &RestockRepo{s: s},
		Shipments: &ShipmentRepo{s: s},
		Analytics: &AnalyticsRepo{s: s},
		Tx:        &TxRunner{db: db},
	}
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback con WATCH sobre cada clave leída y confirma las escrituras en un MULTI/EXEC.
type TxRunner struct {
	db *DB
}

// Run reintenta mientras otra transacción modifique una clave observada.
// Agotados los reintentos devuelve domain.ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	restockRepo repository.RestockRepository,
	shipmentRepo repository.ShipmentRepository,
	saleRepo repository.SaleRepository,
) error) error {
	for attempt := 1; attempt <= r.db.maxRetries; attempt++ {
		err := r.db.client.Watch(ctx, func(tx *redis.Tx) error {
			s := r.db.inTx(tx)
			if err := fn(&InventoryRepo{s: s}, &RestockRepo{s: s}, &ShipmentRepo{s: s}, &SaleRepo{s: s}); err != nil {
				return err
			}
			return s.commit(ctx)
		})
		if errors.Is(err, redis.TxFailedErr) {
			log.Debug().Int("attempt", attempt).Msg("redis: transacción en conflicto, reintentando")
			continue
		}
		return err
	}
	return fmt.Errorf("%w: demasiadas modificaciones concurrentes", domain.ErrConflict)
}

// session lectura/escritura sobre el cliente o, dentro de Run, sobre la tx.
type session struct {
	db      *DB
	rdb     redis.Cmdable
	tx      *redis.Tx
	watched map[string]bool
	staged  map[string][]byte
	ops     []func(redis.Pipeliner)
}

func (db *DB) direct() *session {
	return &session{db: db, rdb: db.client}
}

func (db *DB) inTx(tx *redis.Tx) *session {
	return &session{db: db, rdb: tx, tx: tx, watched: map[string]bool{}, staged: map[string][]byte{}}
}

func (s *session) key(parts ...string) string {
	return s.db.prefix + ":" + strings.Join(parts, ":")
}

// commit ejecuta las escrituras acumuladas en un único MULTI/EXEC.
func (s *session) commit(ctx context.Context) error {
	if len(s.ops) == 0 {
		return nil
	}
	_, err := s.tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range s.ops {
			op(pipe)
		}
		return nil
	})
	return err
}
