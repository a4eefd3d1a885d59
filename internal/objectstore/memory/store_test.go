package memory

import (
	"context"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	meta := map[string]string{"source-key": "a.py"}
	if err := s.Put(ctx, "b", "k", []byte("content"), "text/plain", meta); err != nil {
		t.Fatalf("put: %v", err)
	}

	obj, err := s.Get(ctx, "b", "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(obj.Data) != "content" {
		t.Fatalf("unexpected data: %q", obj.Data)
	}
	if obj.Size != 7 {
		t.Fatalf("unexpected size: %d", obj.Size)
	}
	if s.ContentType("b", "k") != "text/plain" {
		t.Fatalf("unexpected content type: %q", s.ContentType("b", "k"))
	}
	if s.Metadata("b", "k")["source-key"] != "a.py" {
		t.Fatalf("unexpected metadata: %v", s.Metadata("b", "k"))
	}
}

func TestGetMissingObject(t *testing.T) {
	s := New()
	if _, err := s.Get(context.Background(), "b", "nope"); err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestBucketsAreIsolated(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Put(ctx, "one", "k", []byte("x"), "", nil); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Get(ctx, "two", "k"); err == nil {
		t.Fatal("expected key to be scoped to its bucket")
	}
}

func TestStoredDataIsCopied(t *testing.T) {
	s := New()
	ctx := context.Background()

	data := []byte("original")
	if err := s.Put(ctx, "b", "k", data, "", nil); err != nil {
		t.Fatalf("put: %v", err)
	}
	data[0] = 'X'

	obj, err := s.Get(ctx, "b", "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(obj.Data) != "original" {
		t.Fatalf("caller mutation leaked into the store: %q", obj.Data)
	}
}
