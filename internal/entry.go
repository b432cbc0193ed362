// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/starford/rowing/internal/api"
	"github.com/starford/rowing/internal/mcpserver"
	"github.com/starford/rowing/internal/observability"
	"github.com/starford/rowing/internal/sse"
	"github.com/starford/rowing/internal/storage"
	"github.com/starford/rowing/internal/workoutlog"
	"github.com/starford/rowing/internal/workoutstore"
)

// backend is the opened durable store plus what the runtime needs from it.
type backend struct {
	kv    storage.Provider
	fs    *storage.FS // non-nil for the fs driver, enables watching
	close func() error
}

func (a *application) init() (*Config, error) {
	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if a.version == "" {
		a.version = "dev"
	}
	return a.config, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// openBackend opens the configured key-value backend, creating its directory.
func openBackend(cfg StorageConfig) (*backend, error) {
	switch cfg.Driver {
	case StorageDriverMemory:
		return &backend{kv: storage.NewMemory(), close: func() error { return nil }}, nil

	case StorageDriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		db, err := storage.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &backend{kv: db, close: db.Close}, nil

	case StorageDriverFS:
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		fs, err := storage.NewFS(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &backend{kv: fs, fs: fs, close: func() error { return nil }}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// watch reloads log whenever the fs backend's key changes outside this
// process. It blocks until ctx is done and never fails the caller.
func watch(ctx context.Context, b *backend, cfg StorageConfig, log *workoutlog.Log, logger *slog.Logger) {
	if b.fs == nil || !cfg.Watch {
		return
	}
	err := storage.Watch(ctx, b.fs, cfg.Key, logger, func(string) {
		log.Reload()
	})
	if err != nil {
		logger.Warn("watcher unavailable", slog.String("error", err.Error()))
	}
}

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	cfg, err := app.init()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stdout, cfg.App.LogLevel)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("storage_path", cfg.Storage.Path),
		slog.String("storage_key", cfg.Storage.Key),
		slog.String("log_level", cfg.App.LogLevel.String()))

	b, err := openBackend(cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer b.close()

	broker := sse.NewBroker(time.Second)
	defer broker.Close()

	log := workoutlog.New(
		workoutstore.New(b.kv, cfg.Storage.Key, logger),
		workoutlog.WithLogger(logger),
		workoutlog.WithListener(func(ev workoutlog.Event) {
			observability.RecordWorkoutEvent(ev.Kind, ev.Count, ev.Total)
			if ev.Kind == workoutlog.EventRejected {
				return
			}
			broker.PublishWorkoutEvent(ev.Kind, ev.ID, sse.Summary{Count: ev.Count, TotalMinutes: ev.Total})
		}),
	)
	observability.SetCollection(log.Len(), log.TotalMinutes())
	logger.Info("Workouts loaded", slog.Int("count", log.Len()))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	api.MountPages(r, log, cfg.App.RepoURL)
	r.Mount("/api", api.NewRouter(log, broker))

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		watch(gCtx, b, cfg.Storage, log, logger)
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// Open event streams only end when the broker closes.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group's context so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the workout log as MCP tools over stdio until stdin closes.
// Logs go to stderr because stdout carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	cfg, err := app.init()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.App.LogLevel)

	b, err := openBackend(cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer b.close()

	log := workoutlog.New(
		workoutstore.New(b.kv, cfg.Storage.Key, logger),
		workoutlog.WithLogger(logger),
	)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go watch(watchCtx, b, cfg.Storage, log, logger)

	logger.Info("Starting MCP server", slog.String("version", app.version), slog.Int("workouts", log.Len()))
	if err := mcpserver.New(log, app.version).ServeStdio(); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}
