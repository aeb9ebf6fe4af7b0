// Package main is the entry point for the studio server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sustudio/internal/ai"
	"sustudio/internal/cache"
	"sustudio/internal/capture"
	"sustudio/internal/config"
	"sustudio/internal/creator"
	"sustudio/internal/database"
	"sustudio/internal/handlers"
	"sustudio/internal/imaging"
	"sustudio/internal/models"
	"sustudio/internal/router"
	"sustudio/internal/scheduler"
	"sustudio/internal/storage"
	"sustudio/internal/store"
	"sustudio/internal/studio"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey. The cache is a read fallback, so a missing cache
	// degrades gracefully instead of blocking startup.
	var objectCache *cache.ObjectCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, running without cache", "error", err)
	} else {
		defer valkeyClient.Close()
		objectCache = cache.NewObjectCache(valkeyClient, cache.DefaultObjectTTL)
	}

	// Start the vips image pipeline.
	imaging.Startup(cfg.VipsConcurrency)
	defer imaging.Shutdown()

	// Initialize data stores.
	brandStore := store.NewBrandStore(db, objectCache)
	historyStore := store.NewHistoryStore(db)
	scheduledStore := store.NewScheduledPostStore(db)
	usageStore := store.NewUsageStore(db, objectCache)

	// Connect to S3-compatible object storage. Optional: captured assets
	// stay inline as data URIs without it.
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3PublicBucket, cfg.S3PrivateBucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"public_bucket", cfg.S3PublicBucket,
			)
		}
	} else {
		slog.Warn("s3 storage not configured, captured assets stay inline")
	}

	// Usage accounting and provider events feed the counters and the log.
	recordUsage := func(ctx context.Context, task ai.Task, tokens int) {
		resource := models.UsageText
		if task == ai.TaskImage {
			resource = models.UsageImage
		}
		date := time.Now().Format("2006-01-02")
		if err := usageStore.Increment(ctx, date, resource, tokens); err != nil {
			slog.Warn("usage increment failed", "task", task, "error", err)
		}
	}
	notify := func(ev ai.Event) {
		slog.Info("provider served request", "provider", ev.Provider, "task", ev.Task)
	}

	// Build the fallback engine from the configured provider keys.
	engine := ai.BuildEngine(cfg.Providers(),
		ai.WithUsageRecorder(recordUsage),
		ai.WithNotifier(notify),
	)
	slog.Info("ai fallback engine initialized", "text_providers", engine.TextProviders())

	// The content studio: Gemini primary, fallback engine behind it.
	contentStudio := studio.New(studio.GeminiFactory(), engine,
		studio.WithUsageRecorder(recordUsage),
		studio.WithNotifier(notify),
	)

	// Generation state machine and capture pipeline.
	contentCreator := creator.New(contentStudio, historyStore)
	pipeline := capture.New(imaging.NewVips())

	// Calendar orchestrator.
	var uploader scheduler.Uploader
	if storageClient != nil {
		uploader = storageClient
	}
	sched := scheduler.New(scheduledStore, contentStudio, pipeline, uploader)

	// Create handler groups with their dependencies.
	studioHandlers := handlers.NewStudio(contentCreator, brandStore, pipeline)
	brandHandlers := handlers.NewBrand(brandStore, contentStudio)
	calendarHandlers := handlers.NewCalendar(sched, brandStore)
	historyHandlers := handlers.NewHistory(historyStore)
	usageHandlers := handlers.NewUsage(usageStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(studioHandlers, brandHandlers, calendarHandlers, historyHandlers, usageHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate generation cycles that wait on provider responses and
	// video exports (up to a few minutes for a full carousel video).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
