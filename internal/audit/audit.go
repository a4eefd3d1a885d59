// Package audit records each analysis invocation for later inspection.
// Recording is best-effort: failures are logged and never affect the
// request path.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded invocation.
type Entry struct {
	ID             string
	RequestID      string
	Kind           string // prompt, object
	Status         string // success, error
	SourceBucket   string
	SourceKey      string
	FileType       string
	OutputLocation string
	PromptTokens   int
	Duration       time.Duration
	ErrorMessage   string
	CreatedAt      time.Time
}

// Store persists audit entries.
type Store interface {
	SaveAnalysis(ctx context.Context, entry *Entry) error
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
	Close() error
}

// Record persists an entry on a detached short-timeout context so a client
// disconnect cannot drop the audit row. Nil store is a no-op.
func Record(ctx context.Context, store Store, entry *Entry, logger *slog.Logger) {
	if store == nil {
		return
	}

	if entry.ID == "" {
		entry.ID = "an_" + uuid.New().String()
	}

	persistCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.SaveAnalysis(persistCtx, entry); err != nil {
		logger.Error("failed to record analysis",
			slog.String("request_id", entry.RequestID),
			slog.String("error", err.Error()),
		)
	}
}
