// Command invoke runs the function once against an event document read
// from a file or stdin and prints the response payload. It exercises the
// direct-invocation and storage-notification surfaces without a server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"
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
)

func main() {
	eventPath := flag.String("event", "", "path to event JSON file (default: stdin)")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	registration.RegisterBuiltins()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	raw, err := readEvent(*eventPath)
	if err != nil {
		log.Fatalf("Failed to read event: %v", err)
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

	payload := handler.Invoke(ctx, raw, uuid.New().String())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		log.Fatalf("Failed to encode response: %v", err)
	}
}

func readEvent(path string) (json.RawMessage, error) {
	var data []byte
	var err error

	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		data = []byte("{}")
	}
	return data, nil
}
