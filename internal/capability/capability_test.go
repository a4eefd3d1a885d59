package capability

import (
	"context"
	"testing"

	"codescope/internal/config"
)

type nopAnalyzer struct{}

func (nopAnalyzer) Name() string { return "nop" }

func (nopAnalyzer) Analyze(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", nil
}

func TestNewUsesRegisteredFactory(t *testing.T) {
	Register("nop-test", func(cfg config.AnalyzerConfig) (Analyzer, error) {
		return nopAnalyzer{}, nil
	})

	analyzer, err := New(config.AnalyzerConfig{Type: "nop-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analyzer.Name() != "nop" {
		t.Fatalf("unexpected analyzer: %q", analyzer.Name())
	}
}

func TestNewUnknownType(t *testing.T) {
	if _, err := New(config.AnalyzerConfig{Type: "does-not-exist"}); err == nil {
		t.Fatal("expected error for unregistered analyzer type")
	}
}
