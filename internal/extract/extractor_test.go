package extract

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"codescope/internal/domain"
	"codescope/internal/objectstore/memory"
)

func TestParsePrompt(t *testing.T) {
	req, err := Parse([]byte(`{"prompt": "check this"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != domain.KindPrompt {
		t.Fatalf("expected prompt kind, got %q", req.Kind)
	}
	if req.Prompt != "check this" {
		t.Fatalf("unexpected prompt: %q", req.Prompt)
	}
	if !req.AllowDefaultDestination {
		t.Fatalf("parsed requests must allow the default destination fallback")
	}
}

func TestParseEmptyPromptIsValid(t *testing.T) {
	// An explicit empty prompt is a present field, not a missing one.
	req, err := Parse([]byte(`{"prompt": ""}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != domain.KindPrompt || req.Prompt != "" {
		t.Fatalf("expected empty prompt request, got %+v", req)
	}
}

func TestParsePromptWinsOverObjectReference(t *testing.T) {
	req, err := Parse([]byte(`{"prompt": "p", "s3_bucket": "b", "s3_key": "k"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != domain.KindPrompt {
		t.Fatalf("expected prompt to take precedence, got %q", req.Kind)
	}
}

func TestParseObjectReference(t *testing.T) {
	req, err := Parse([]byte(`{"s3_bucket": "b", "s3_key": "dir/file.go", "destination_bucket": "out"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != domain.KindObject {
		t.Fatalf("expected object kind, got %q", req.Kind)
	}
	if req.Bucket != "b" || req.Key != "dir/file.go" || req.DestinationBucket != "out" {
		t.Fatalf("unexpected request fields: %+v", req)
	}
}

func TestParseMissingFields(t *testing.T) {
	_, err := Parse([]byte(`{}`))
	if err == nil {
		t.Fatal("expected error for empty body")
	}
	apiErr := err.(*domain.APIError)
	if apiErr.Type != domain.ErrorTypeInvalidRequest {
		t.Fatalf("expected invalid_request, got %q", apiErr.Type)
	}
	if apiErr.Message != "Missing required fields: either 'prompt' or 's3_bucket' required" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestParseBucketWithoutKey(t *testing.T) {
	_, err := Parse([]byte(`{"s3_bucket": "b"}`))
	if err == nil {
		t.Fatal("expected error for bucket without key")
	}
	apiErr := err.(*domain.APIError)
	if apiErr.Message != "Missing required field: s3_key" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	apiErr := err.(*domain.APIError)
	if apiErr.Message != "Invalid JSON in request body" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestFileType(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"src/app.py", "py"},
		{"main.GO", "go"},
		{"archive.tar.gz", "gz"},
		{"README", "unknown"},
		{"dir.v2/noext", "unknown"},
	}

	for _, tc := range cases {
		if got := FileType(tc.key); got != tc.want {
			t.Errorf("FileType(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestOutputKeyIsDeterministic(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	got := OutputKey("src/pkg/app.py", ts)
	want := "analysis/src_pkg_app.py_20250314_092653_analysis.md"
	if got != want {
		t.Fatalf("OutputKey = %q, want %q", got, want)
	}

	if again := OutputKey("src/pkg/app.py", ts); again != got {
		t.Fatalf("same inputs must produce the same key: %q vs %q", again, got)
	}
}

func TestBuildPromptPassesInlinePromptThrough(t *testing.T) {
	e := New(memory.New(), slog.Default())

	prompt, info, err := e.BuildPrompt(context.Background(), &domain.AnalysisRequest{
		Kind:   domain.KindPrompt,
		Prompt: "verbatim text",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt != "verbatim text" {
		t.Fatalf("inline prompts must not be rewritten, got %q", prompt)
	}
	if info != nil {
		t.Fatalf("inline prompts carry no object info, got %+v", info)
	}
}

func TestBuildPromptSynthesizesFromObject(t *testing.T) {
	store := memory.New()
	content := []byte("def main():\n    pass\n")
	if err := store.Put(context.Background(), "src", "pkg/app.py", content, "text/plain", nil); err != nil {
		t.Fatalf("seed object: %v", err)
	}

	e := New(store, slog.Default())

	prompt, info, err := e.BuildPrompt(context.Background(), &domain.AnalysisRequest{
		Kind:   domain.KindObject,
		Bucket: "src",
		Key:    "pkg/app.py",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info == nil || info.FileType != "py" || info.Size != int64(len(content)) {
		t.Fatalf("unexpected object info: %+v", info)
	}

	for _, fragment := range []string{
		"Analyze this py code file",
		"File: pkg/app.py",
		"def main():",
		"Security vulnerabilities",
		"Concrete improvement examples",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("synthesized prompt missing %q", fragment)
		}
	}
}

func TestBuildPromptReadFailure(t *testing.T) {
	e := New(memory.New(), slog.Default())

	_, _, err := e.BuildPrompt(context.Background(), &domain.AnalysisRequest{
		Kind:   domain.KindObject,
		Bucket: "src",
		Key:    "missing.py",
	})
	if err == nil {
		t.Fatal("expected error for missing object")
	}

	apiErr, ok := err.(*domain.APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Type != domain.ErrorTypeStoreRead {
		t.Fatalf("expected store_read, got %q", apiErr.Type)
	}
	if !strings.HasPrefix(apiErr.Message, "Failed to read object:") {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}
