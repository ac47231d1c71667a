package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stylelane-api/internal/domain"
)

// load lee un documento JSON. Dentro de una tx observa la clave antes de leerla.
func (s *session) load(ctx context.Context, key string, v any) (bool, error) {
	if s.tx != nil {
		if raw, ok := s.staged[key]; ok {
			return true, json.Unmarshal(raw, v)
		}
		if err := s.watch(ctx, key); err != nil {
			return false, err
		}
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// watch observa la clave una sola vez por transacción: el primer WATCH fija la versión
// que EXEC compara.
func (s *session) watch(ctx context.Context, key string) error {
	if s.watched[key] {
		return nil
	}
	if err := s.tx.Watch(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis watch %s: %w", key, err)
	}
	s.watched[key] = true
	return nil
}

// lookup resuelve una clave de índice (valor = id).
func (s *session) lookup(ctx context.Context, key string) (string, error) {
	if s.tx != nil {
		if err := s.watch(ctx, key); err != nil {
			return "", err
		}
	}
	id, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return id, nil
}

// loadMany lee varios documentos con MGET; las claves inexistentes se omiten.
func (s *session) loadMany(ctx context.Context, keys []string, each func(raw []byte) error) error {
	if len(keys) == 0 {
		return nil
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return fmt.Errorf("redis mget: %w", err)
	}
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		if err := each([]byte(str)); err != nil {
			return err
		}
	}
	return nil
}

// members ids de un set de índice.
func (s *session) members(ctx context.Context, key string) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %s: %w", key, err)
	}
	return ids, nil
}

// save escribe el documento y las operaciones extra en un mismo MULTI/EXEC.
// Dentro de una tx solo se acumulan hasta commit.
func (s *session) save(ctx context.Context, key string, v any, extra func(pipe redis.Pipeliner)) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	op := func(pipe redis.Pipeliner) {
		pipe.Set(ctx, key, raw, 0)
		if extra != nil {
			extra(pipe)
		}
	}
	if s.tx != nil {
		s.staged[key] = raw
		s.ops = append(s.ops, op)
		return nil
	}
	if _, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		op(pipe)
		return nil
	}); err != nil {
		return fmt.Errorf("redis save %s: %w", key, err)
	}
	return nil
}

// claim reserva una clave de unicidad con SETNX. Devuelve domain.ErrConflict si ya existe
// y una función para liberarla si la escritura posterior falla.
func (s *session) claim(ctx context.Context, key, id, what string) (func(), error) {
	conflict := fmt.Errorf("%w: %s ya existe", domain.ErrConflict, what)
	if s.tx != nil {
		existing, err := s.lookup(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != "" {
			return nil, conflict
		}
		s.ops = append(s.ops, func(pipe redis.Pipeliner) { pipe.SetNX(ctx, key, id, 0) })
		return func() {}, nil
	}
	ok, err := s.rdb.SetNX(ctx, key, id, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	if !ok {
		return nil, conflict
	}
	return func() { s.rdb.Del(context.WithoutCancel(ctx), key) }, nil
}

// keys construye las claves <prefijo>:<entity>:<id> de una lista de ids.
func (s *session) keys(entity string, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.key(entity, id))
	}
	return out
}
