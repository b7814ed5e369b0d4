package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tagdemo/storefront/internal/analytics"
	"github.com/tagdemo/storefront/internal/api"
	"github.com/tagdemo/storefront/internal/api/handler"
	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
	"github.com/tagdemo/storefront/internal/core/service"
	"github.com/tagdemo/storefront/internal/infrastructure/queue"
	"github.com/tagdemo/storefront/internal/infrastructure/storage"
	"github.com/tagdemo/storefront/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(rt *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rt.cfg, rt.log)
		},
	}
}

func runServe(parent context.Context, cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close(context.Background())

	local := storage.NewLocal(b.kv, cfg.KeyPrefix, log)
	lat := latency(cfg)

	catalog, err := openCatalog(ctx, local, lat, log)
	if err != nil {
		return err
	}
	auth := service.NewAuthService(
		storage.NewRecord[[]domain.StoredUser](local, storage.KeyUsers),
		storage.NewRecord[domain.User](local, storage.KeyCurrentUser),
		lat.Auth,
		log,
	)

	layer := analytics.NewDataLayer(cfg.DataLayerCapacity)
	forwarder, err := startForwarder(cfg, layer, log)
	if err != nil {
		return err
	}
	defer forwarder.stop()

	store := service.NewStore(ctx, service.StoreDeps{
		Catalog:       catalog,
		Auth:          auth,
		Cart:          storage.NewRecord[[]domain.CartItem](local, storage.KeyCart),
		Favorites:     storage.NewRecord[[]domain.FavoriteItem](local, storage.KeyFavorites),
		Tracker:       analytics.NewTracker(layer, cfg.BaseURL, log),
		Logger:        log,
		CheckoutDelay: lat.Checkout,
	})

	e := api.NewRouter(api.Deps{
		Store:       store,
		Catalog:     catalog,
		Events:      layer,
		Guard:       b.submitGuard(cfg),
		Readiness:   map[string]handler.Pinger{"storage": b.kv},
		AdminSecret: cfg.AdminJWTSecret,
		Logger:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.StorageBackend).Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	return nil
}

// forwarder owns the optional dispatcher and collector.
type forwarder struct {
	dispatcher *queue.Dispatcher
	collector  ports.Collector
	log        zerolog.Logger
}

// startForwarder hooks a dispatcher onto the data layer when COLLECTOR names
// a collector. With COLLECTOR=none events stay on the data layer only.
func startForwarder(cfg *config.Config, layer *analytics.DataLayer, log zerolog.Logger) (*forwarder, error) {
	f := &forwarder{log: log}

	var err error
	switch cfg.Forward.Collector {
	case config.CollectorNone:
		return f, nil
	case config.CollectorLog:
		f.collector = queue.NewLogCollector(log)
	case config.CollectorKafka:
		f.collector = queue.NewKafkaCollector(cfg.Forward.KafkaTopic, cfg.Forward.KafkaBrokers...)
	case config.CollectorAMQP:
		f.collector, err = queue.NewAMQPCollector(cfg.Forward.AMQPURL, cfg.Forward.AMQPQueue)
		if err != nil {
			return nil, err
		}
	}

	f.dispatcher = queue.NewDispatcher(cfg.Forward.Workers, f.collector, log)
	// Workers run on a background context; stop drains them.
	f.dispatcher.Start(context.Background())
	layer.OnPush(f.dispatcher.Enqueue)
	log.Info().Str("collector", f.collector.Name()).Int("workers", cfg.Forward.Workers).Msg("event forwarding enabled")
	return f, nil
}

// stop drains the dispatcher and closes the collector. The HTTP server must
// already be shut down so that nothing pushes to the data layer.
func (f *forwarder) stop() {
	if f.dispatcher == nil {
		return
	}
	f.dispatcher.Stop()
	if err := f.collector.Close(); err != nil {
		f.log.Error().Err(err).Str("collector", f.collector.Name()).Msg("collector close")
	}
}
