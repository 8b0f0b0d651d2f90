package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/dcastellanos/mobilecart/api/controllers"
	"github.com/dcastellanos/mobilecart/api/routes"
	"github.com/dcastellanos/mobilecart/internal/cart"
	"github.com/dcastellanos/mobilecart/internal/products"
	"github.com/dcastellanos/mobilecart/pkg/config"
	"github.com/dcastellanos/mobilecart/pkg/kv"
	"github.com/dcastellanos/mobilecart/pkg/logger"
	"github.com/dcastellanos/mobilecart/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, pinger, closeStorage, err := newStorage(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cartStore, err := cart.NewStore(ctx, cart.StoreParams{
		Storage: storage,
		Key:     cfg.Storage.CartKey,
		Logger:  logg,
		Metrics: metrics.NewCartMetrics(registry),
	})
	if err != nil {
		logg.Error(ctx, "failed to bootstrap cart store", err)
		os.Exit(1)
	}

	var catalog controllers.CatalogService
	if cfg.Catalog.BaseURL != "" {
		client, err := products.NewClient(cfg.Catalog)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap catalog client", err)
			os.Exit(1)
		}
		catalog = client
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	lctx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Storage.Backend,
	})
	logg.Info(lctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, pinger, cartStore, catalog, registry),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(lctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(lctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	if closeStorage != nil {
		shutdownErr = multierr.Append(shutdownErr, closeStorage())
	}
	if shutdownErr != nil {
		logg.Error(lctx, "shutdown finished with errors", shutdownErr)
		os.Exit(1)
	}
	logg.Info(lctx, "api server stopped")
}

// newStorage builds the configured durable backend. The returned pinger
// and close func are nil for backends without a connection to manage.
func newStorage(ctx context.Context, cfg *config.Config) (kv.Store, controllers.Pinger, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		return kv.NewMemory(), nil, nil, nil
	case config.StorageBackendFile:
		store, err := kv.NewFile(cfg.Storage.Path)
		return store, nil, nil, err
	case config.StorageBackendSQLite:
		store, err := kv.NewSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, store, store.Close, nil
	case config.StorageBackendPG:
		store, err := kv.NewPostgres(cfg.Storage.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, store, store.Close, nil
	case config.StorageBackendRedis:
		store, err := kv.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, store, store.Close, nil
	default:
		// config.Load validates the backend, this is unreachable.
		return kv.NewMemory(), nil, nil, nil
	}
}
