package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeoutSeconds != 120 {
		t.Errorf("expected default timeout 120s, got %d", cfg.Server.RequestTimeoutSeconds)
	}
	if cfg.Analyzer.Type != "anthropic" {
		t.Errorf("expected default analyzer anthropic, got %q", cfg.Analyzer.Type)
	}
	if cfg.Analyzer.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("unexpected default model: %q", cfg.Analyzer.Model)
	}
	if cfg.Analyzer.MaxTokens != 4000 {
		t.Errorf("expected default max tokens 4000, got %d", cfg.Analyzer.MaxTokens)
	}
	if cfg.Analyzer.Temperature != 0.3 {
		t.Errorf("expected default temperature 0.3, got %v", cfg.Analyzer.Temperature)
	}
	if cfg.Store.Type != "memory" {
		t.Errorf("expected default store memory, got %q", cfg.Store.Type)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CODESCOPE_SERVER__PORT", "9090")
	t.Setenv("CODESCOPE_ANALYZER__TYPE", "openai")
	t.Setenv("CODESCOPE_OUTPUT__BUCKET", "results")
	t.Setenv("CODESCOPE_AUDIT__PATH", "/tmp/audit.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Analyzer.Type != "openai" {
		t.Errorf("expected analyzer openai, got %q", cfg.Analyzer.Type)
	}
	if cfg.Output.Bucket != "results" {
		t.Errorf("expected output bucket results, got %q", cfg.Output.Bucket)
	}
	if cfg.Audit.Path != "/tmp/audit.db" {
		t.Errorf("expected audit path, got %q", cfg.Audit.Path)
	}
}

func TestAPIKeyEnvSubstitution(t *testing.T) {
	t.Setenv("MY_SECRET_KEY", "sk-test-123")
	t.Setenv("CODESCOPE_ANALYZER__API_KEY", "${MY_SECRET_KEY}")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Analyzer.APIKey != "sk-test-123" {
		t.Fatalf("expected substituted key, got %q", cfg.Analyzer.APIKey)
	}
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("VAR_A", "alpha")

	if got := substituteEnvVars("${VAR_A}"); got != "alpha" {
		t.Errorf("expected alpha, got %q", got)
	}
	if got := substituteEnvVars("plain"); got != "plain" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := substituteEnvVars("${UNSET_VAR_XYZ}"); got != "" {
		t.Errorf("expected empty for unset var, got %q", got)
	}
}
