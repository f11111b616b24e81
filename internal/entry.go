// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/vitalog/internal/api"
	"github.com/starford/vitalog/internal/dataset"
	"github.com/starford/vitalog/internal/journal"
	"github.com/starford/vitalog/internal/mcpserver"
	"github.com/starford/vitalog/internal/prefstore"
	"github.com/starford/vitalog/internal/sse"
	"github.com/starford/vitalog/internal/timeline"
)

// wireBroadcasts connects the mutation sources to the SSE broker: journal
// changes publish note.created/note.deleted plus the throttled
// timeline.updated, and writes to the timeline-* preference keys (filters,
// date range, expansion) publish timeline.updated so other tabs re-render.
// The returned function cancels both subscriptions.
func wireBroadcasts(broker *sse.Broker, jrnl *journal.Journal, prefs *prefstore.Store) func() {
	unsubNotes := jrnl.Subscribe(func(kind, id string) {
		broker.PublishNoteEvent(kind, id)
	})
	unsubPrefs := prefs.Subscribe(func(key string) {
		if strings.HasPrefix(key, "timeline-") {
			broker.Publish(sse.Event{Type: "timeline.updated", Data: map[string]string{}})
		}
	})
	return func() {
		unsubNotes()
		unsubPrefs()
	}
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_path", cfg.Data.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize preference store.
	provider, err := prefstore.OpenSQLite(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init prefstore: %w", err)
	}
	prefs := prefstore.New(provider)
	defer prefs.Close()

	// Load the insights dataset.
	data, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("init dataset: %w", err)
	}

	// Note journal and timeline pipeline.
	jrnl := journal.New(prefs)
	tl := timeline.NewService(data, jrnl)

	if app.mcp {
		logger.Info("Starting MCP stdio server")
		return mcpserver.New(jrnl, tl, data).ServeStdio()
	}

	// SSE broker: journal mutations, preference writes and dataset reloads
	// fan out to every connected dashboard tab.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	release := wireBroadcasts(broker, jrnl, prefs)
	defer release()

	// Build API handler and router.
	h := api.NewHandler(data, jrnl, tl, prefs)
	apiRouter := api.NewRouter(h, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
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

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the dataset file and rebroadcast on reload.
	g.Go(func() error {
		if err := data.Watch(gCtx, logger, func() {
			broker.Publish(sse.Event{Type: "timeline.updated", Data: map[string]string{}})
		}); err != nil {
			logger.Warn("dataset watcher unavailable", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
