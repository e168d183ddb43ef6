package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"taxonomy-browser/internal/config"
	"taxonomy-browser/internal/http"
	"taxonomy-browser/internal/ingest"
	"taxonomy-browser/internal/service"
	"taxonomy-browser/internal/storage"
)

var errNoDataset = errors.New("no committed dataset")

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	tracker := &ingest.Tracker{}
	if cfg.IngestOnStart {
		format, err := ingest.ParseFormat(cfg.DataFormat)
		if err != nil {
			log.Fatalf("Invalid data format: %v", err)
		}
		pipeline := ingest.NewPipeline(newSource(cfg), store, format).
			WithLogger(logger).
			WithTracker(tracker)
		if _, err := pipeline.Run(ctx); err != nil {
			slog.Warn("Ingestion failed, falling back to previously committed dataset", "error", err)
		}
	} else {
		slog.Info("Ingestion on start disabled")
	}

	count, err := ensureDataset(ctx, store)
	if err != nil {
		slog.Error("Refusing to serve", "error", err)
		closeStore()
		os.Exit(1)
	}
	slog.Info("Dataset ready", "nodes", count)

	browser := service.NewBrowser(store, service.Options{
		DefaultLimit: cfg.DefaultLimit,
		SearchLimit:  cfg.SearchLimit,
	})

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		Browser:      browser,
		Store:        store,
		Tracker:      tracker,
		LargestLimit: cfg.LargestLimit,
	})

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	// Start API server
	slog.Info("Starting API server", "addr", server.Addr, "store", cfg.StoreBackend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		slog.Error("API server failed", "error", err)
		closeStore()
		os.Exit(1)
	}
}

// openStore returns the configured record store and a function releasing it.
func openStore(cfg *config.Config) (storage.NodeStore, func(), error) {
	if cfg.StoreBackend == config.BackendMemory {
		slog.Info("Using in-memory store")
		return storage.NewMemoryStore(), func() {}, nil
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	return storage.NewNodeRepo(db), sync.OnceFunc(func() { _ = db.Close() }), nil
}

// ensureDataset reports how many nodes store holds and fails when there are none.
func ensureDataset(ctx context.Context, store storage.NodeStore) (int, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count stored nodes: %w", err)
	}
	if count == 0 {
		return 0, errNoDataset
	}
	return count, nil
}

// newSource picks the local file when one is configured, otherwise the URL.
func newSource(cfg *config.Config) ingest.Source {
	if cfg.DataPath != "" {
		return ingest.FileSource{Path: cfg.DataPath}
	}
	return ingest.NewHTTPSource(cfg.DataURL, cfg.FetchTimeout, cfg.FetchAttempts)
}
