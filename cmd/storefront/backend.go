package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
	"github.com/tagdemo/storefront/internal/core/service"
	mongodb "github.com/tagdemo/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/tagdemo/storefront/internal/infrastructure/db/redis"
	sqlitedb "github.com/tagdemo/storefront/internal/infrastructure/db/sqlite"
	"github.com/tagdemo/storefront/internal/infrastructure/storage"
	"github.com/tagdemo/storefront/internal/pkg/config"
)

// backend is an opened key-value store plus whatever must be released with it.
type backend struct {
	kv ports.KVStore
	// redis is set only for the redis backend; the add-to-cart guard shares it.
	redis   *goredis.Client
	closers []func(context.Context) error
}

func (b *backend) Close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i](ctx)
	}
}

// openBackend connects the storage selected by STORAGE_BACKEND.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	b := &backend{}
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		b.kv = redisdb.NewKVStore(client)
		b.redis = client
		b.closers = append(b.closers, func(context.Context) error { return client.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("storage: redis")

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.kv = mongodb.NewKVStore(db)
		b.closers = append(b.closers, client.Disconnect)
		log.Info().Str("database", cfg.Mongo.Database).Msg("storage: mongo")

	case config.BackendSQLite:
		kv, err := sqlitedb.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		b.kv = kv
		b.closers = append(b.closers, func(context.Context) error { return kv.Close() })
		log.Info().Str("path", cfg.SQLite.Path).Msg("storage: sqlite")

	case config.BackendMemory:
		b.kv = storage.NewMemoryKV()
		log.Warn().Msg("storage: memory, state is lost on restart")

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	return b, nil
}

// submitGuard debounces add-to-cart in Redis when it is the backend and in
// process otherwise.
func (b *backend) submitGuard(cfg *config.Config) ports.SubmitGuard {
	if b.redis != nil {
		return redisdb.NewSubmitGuard(b.redis, cfg.AddToCartDebounce)
	}
	return storage.NewMemoryGuard(cfg.AddToCartDebounce)
}

func latency(cfg *config.Config) service.Latency {
	return service.Latency{
		List:     cfg.Latency.List,
		Get:      cfg.Latency.Get,
		Auth:     cfg.Latency.Auth,
		Checkout: cfg.Latency.Checkout,
	}
}

// openCatalog seeds and returns the catalog over the given backend.
func openCatalog(ctx context.Context, local *storage.Local, lat service.Latency, log zerolog.Logger) (*service.CatalogService, error) {
	return service.NewCatalogService(ctx, storage.NewRecord[[]domain.Product](local, storage.KeyProducts), lat, log)
}
