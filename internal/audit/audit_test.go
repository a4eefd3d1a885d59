package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

type captureStore struct {
	saved []*Entry
	err   error
}

func (c *captureStore) SaveAnalysis(ctx context.Context, entry *Entry) error {
	if c.err != nil {
		return c.err
	}
	c.saved = append(c.saved, entry)
	return nil
}

func (c *captureStore) ListRecent(ctx context.Context, limit int) ([]*Entry, error) {
	return c.saved, nil
}

func (c *captureStore) Close() error { return nil }

func TestRecordAssignsID(t *testing.T) {
	store := &captureStore{}

	Record(context.Background(), store, &Entry{RequestID: "req-1"}, slog.Default())

	if len(store.saved) != 1 {
		t.Fatalf("expected 1 saved entry, got %d", len(store.saved))
	}
	if !strings.HasPrefix(store.saved[0].ID, "an_") {
		t.Fatalf("expected generated an_ id, got %q", store.saved[0].ID)
	}
}

func TestRecordKeepsExistingID(t *testing.T) {
	store := &captureStore{}

	Record(context.Background(), store, &Entry{ID: "an_fixed"}, slog.Default())

	if store.saved[0].ID != "an_fixed" {
		t.Fatalf("expected existing id preserved, got %q", store.saved[0].ID)
	}
}

func TestRecordNilStoreIsNoOp(t *testing.T) {
	// Must not panic.
	Record(context.Background(), nil, &Entry{RequestID: "req-2"}, slog.Default())
}

func TestRecordSwallowsSaveFailure(t *testing.T) {
	store := &captureStore{err: fmt.Errorf("disk full")}

	// Must not panic or propagate the error.
	Record(context.Background(), store, &Entry{RequestID: "req-3"}, slog.Default())
}
