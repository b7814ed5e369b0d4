package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a KVStore when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the raw key-value backend behind the persistence helper.
// Values are opaque bytes; the helper owns the JSON encoding.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// Record is one typed value under a fixed key. Get never fails: absence and
// unreadable values both report ok=false.
type Record[T any] interface {
	Get(ctx context.Context) (T, bool)
	Set(ctx context.Context, v T) error
	Remove(ctx context.Context) error
}
