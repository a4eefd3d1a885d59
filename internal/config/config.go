// Package config loads service configuration from config.yaml and
// CODESCOPE_-prefixed environment variables.
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Output   OutputConfig   `koanf:"output"`
	Analyzer AnalyzerConfig `koanf:"analyzer"`
	Store    StoreConfig    `koanf:"store"`
	Audit    AuditConfig    `koanf:"audit"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
	// RequestTimeoutSeconds bounds a single request, capability call
	// included. The capability can be slow, so the default is generous.
	RequestTimeoutSeconds int `koanf:"request_timeout_seconds"`
}

// OutputConfig holds the default destination for persisted analyses.
// Consulted only when a request does not name its own destination bucket.
type OutputConfig struct {
	Bucket string `koanf:"bucket"`
}

type AnalyzerConfig struct {
	Type        string  `koanf:"type"` // anthropic, openai
	APIKey      string  `koanf:"api_key"`
	Model       string  `koanf:"model"`
	BaseURL     string  `koanf:"base_url"` // Custom API endpoint
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float32 `koanf:"temperature"`
}

type StoreConfig struct {
	Type            string `koanf:"type"` // gcs, memory
	CredentialsFile string `koanf:"credentials_file"`
}

type AuditConfig struct {
	Path string `koanf:"path"` // SQLite database path; empty disables auditing
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load from config.yaml file first
	if err := k.Load(file.Provider("config.yaml"), yaml.Parser()); err != nil {
		// File not found is OK, we'll use env vars
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Load environment variables (can override file config)
	if err := k.Load(env.Provider("CODESCOPE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CODESCOPE_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("server.request_timeout_seconds") {
		k.Set("server.request_timeout_seconds", 120)
	}
	if !k.Exists("analyzer.type") {
		k.Set("analyzer.type", "anthropic")
	}
	if !k.Exists("analyzer.model") {
		k.Set("analyzer.model", "claude-3-5-sonnet-20241022")
	}
	if !k.Exists("analyzer.max_tokens") {
		k.Set("analyzer.max_tokens", 4000)
	}
	if !k.Exists("analyzer.temperature") {
		k.Set("analyzer.temperature", 0.3)
	}
	if !k.Exists("store.type") {
		k.Set("store.type", "memory")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	// Substitute environment variables in the API key
	cfg.Analyzer.APIKey = substituteEnvVars(cfg.Analyzer.APIKey)

	return &cfg, nil
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
