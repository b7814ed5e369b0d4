// Package storage is the local persistence helper: typed JSON records over a
// raw key-value backend.
//
// Reads never fail. A missing key, an unreachable backend and a value that no
// longer decodes all read back as "absent", so a corrupt record degrades to
// the same state as a fresh install.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/core/ports"
)

// Keys of the persisted collections, before the configured prefix.
const (
	KeyProducts    = "products"
	KeyUsers       = "users"
	KeyCurrentUser = "current_user"
	KeyCart        = "cart"
	KeyFavorites   = "favorites"
)

// Local binds a backend to a key prefix.
type Local struct {
	kv     ports.KVStore
	prefix string
	log    zerolog.Logger
}

// NewLocal returns a helper writing keys as prefix+name.
func NewLocal(kv ports.KVStore, prefix string, log zerolog.Logger) *Local {
	return &Local{kv: kv, prefix: prefix, log: log.With().Str("component", "storage").Logger()}
}

// Backend exposes the underlying store, e.g. for readiness checks.
func (l *Local) Backend() ports.KVStore {
	return l.kv
}

// Record is a single JSON value of type T under a fixed key.
type Record[T any] struct {
	local *Local
	key   string
}

// NewRecord returns the record stored under name.
func NewRecord[T any](l *Local, name string) Record[T] {
	return Record[T]{local: l, key: l.prefix + name}
}

// Key returns the full backend key.
func (r Record[T]) Key() string {
	return r.key
}

// Get returns the decoded value and true, or the zero value and false.
func (r Record[T]) Get(ctx context.Context) (T, bool) {
	var v T
	raw, err := r.local.kv.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			r.local.log.Warn().Err(err).Str("key", r.key).Msg("read failed, treating as absent")
		}
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		r.local.log.Warn().Err(err).Str("key", r.key).Msg("stored value is malformed, treating as absent")
		var zero T
		return zero, false
	}
	return v, true
}

// Set replaces the stored value.
func (r Record[T]) Set(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.local.kv.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}

// Remove deletes the stored value. Removing an absent key is not an error.
func (r Record[T]) Remove(ctx context.Context) error {
	if err := r.local.kv.Delete(ctx, r.key); err != nil && !errors.Is(err, ports.ErrKeyNotFound) {
		return fmt.Errorf("remove %s: %w", r.key, err)
	}
	return nil
}
