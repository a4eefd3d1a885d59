package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"codescope/internal/audit"
	auditsqlite "codescope/internal/audit/sqlite"
	"codescope/internal/capability"
	"codescope/internal/config"
	"codescope/internal/extract"
	"codescope/internal/function"
	"codescope/internal/objectstore"
	"codescope/internal/objectstore/gcs"
	"codescope/internal/objectstore/memory"
	"codescope/internal/orchestrator"
	"codescope/internal/registration"
	"codescope/internal/server"
	"codescope/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	shutdown, err := telemetry.InitTracer("codescope", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	// Register built-in analyzer adapters
	registration.RegisterBuiltins()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var store objectstore.Store
	switch cfg.Store.Type {
	case "gcs":
		store, err = gcs.New(ctx, cfg.Store.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to create object store: %v", err)
		}
	default:
		logger.Info("using in-memory object store")
		store = memory.New()
	}
	defer store.Close()

	analyzer, err := capability.New(cfg.Analyzer)
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}

	var auditStore audit.Store
	if cfg.Audit.Path != "" {
		auditStore, err = auditsqlite.New(cfg.Audit.Path)
		if err != nil {
			log.Fatalf("Failed to open audit store: %v", err)
		}
		defer auditStore.Close()
	}

	orch := orchestrator.New(orchestrator.Options{
		Extractor:    extract.New(store, logger),
		Analyzer:     analyzer,
		Store:        store,
		OutputBucket: cfg.Output.Bucket,
		AuditStore:   auditStore,
		Logger:       logger,
	})

	handler := function.New(orch, logger)

	requestTimeout := time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second
	srv := server.New(cfg.Server.Port, requestTimeout, handler, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	logger.Info("service started",
		slog.Int("port", cfg.Server.Port),
		slog.String("analyzer", analyzer.Name()),
		slog.String("store", cfg.Store.Type),
		slog.String("output_bucket", cfg.Output.Bucket),
	)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
