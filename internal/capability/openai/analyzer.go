package openai

import (
	"context"
	"fmt"

	"codescope/internal/capability"
	"codescope/internal/config"
)

// Analyzer runs analyses through the OpenAI chat completions API.
type Analyzer struct {
	client      *Client
	model       string
	maxTokens   int
	temperature float32
}

var _ capability.Analyzer = (*Analyzer)(nil)

// Register makes the "openai" analyzer type available.
func Register() {
	capability.Register("openai", func(cfg config.AnalyzerConfig) (capability.Analyzer, error) {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai analyzer requires an API key")
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

func (a *Analyzer) Name() string { return "openai" }

func (a *Analyzer) Analyze(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, &ChatCompletionRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
