// Package capability defines the analysis capability contract: an opaque,
// possibly slow, fallible remote call that turns a prompt into an analysis.
package capability

import (
	"context"
	"fmt"

	"codescope/internal/config"
)

// SystemPrompt is the fixed persona every analysis runs under.
const SystemPrompt = `You are a code analysis assistant. You can:

1. Analyze code files from object storage buckets
2. Identify code quality issues, security vulnerabilities, and best practices
3. Generate detailed analysis reports

When analyzing code:
1. Focus on code quality, security, performance, and maintainability
2. Identify potential bugs, security vulnerabilities, and anti-patterns
3. Suggest improvements and best practices
4. Provide clear, actionable recommendations
5. Format your analysis in a structured, readable format

Always provide constructive feedback and explain the reasoning behind your recommendations.
`

// Analyzer is the narrow contract for the hosted analysis model.
// Implementations make a single synchronous call: no streaming, no retries.
type Analyzer interface {
	Name() string

	// Analyze sends the system instruction and user prompt to the model and
	// returns the analysis text.
	Analyze(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Factory builds an Analyzer from configuration. Registered by the concrete
// adapter packages via Register.
type Factory func(cfg config.AnalyzerConfig) (Analyzer, error)

var factories = make(map[string]Factory)

// Register makes an analyzer type available to New. Typically called from
// an adapter package's init.
func Register(typ string, factory Factory) {
	factories[typ] = factory
}

// New creates the configured Analyzer.
func New(cfg config.AnalyzerConfig) (Analyzer, error) {
	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown analyzer type: %s", cfg.Type)
	}
	return factory(cfg)
}
