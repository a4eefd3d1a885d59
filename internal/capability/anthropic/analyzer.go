package anthropic

import (
	"context"
	"fmt"
	"strings"

	"codescope/internal/capability"
	"codescope/internal/config"
)

// Analyzer runs analyses through the Anthropic Messages API.
type Analyzer struct {
	client      *Client
	model       string
	maxTokens   int
	temperature float32
}

var _ capability.Analyzer = (*Analyzer)(nil)

// Register makes the "anthropic" analyzer type available.
func Register() {
	capability.Register("anthropic", func(cfg config.AnalyzerConfig) (capability.Analyzer, error) {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic analyzer requires an API key")
		}

		var opts []ClientOption
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}

		return &Analyzer{
			client:      NewClient(cfg.APIKey, opts...),
			model:       cfg.Model,
			maxTokens:   cfg.MaxTokens,
			temperature: cfg.Temperature,
		}, nil
	})
}

// NewAnalyzer creates an Analyzer with an existing client. Used by tests.
func NewAnalyzer(client *Client, model string, maxTokens int, temperature float32) *Analyzer {
	return &Analyzer{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (a *Analyzer) Name() string { return "anthropic" }

func (a *Analyzer) Analyze(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := a.client.CreateMessage(ctx, &MessagesRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
		System:      systemPrompt,
		Messages: []Message{
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	return b.String(), nil
}
