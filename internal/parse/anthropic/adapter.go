// Package anthropic provides a parse provider backed by the Anthropic
// Messages API using the official SDK.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/inferenceatlas/atlas/internal/observability"
	"github.com/inferenceatlas/atlas/internal/parse"
)

const maxResponseTokens = 512

// Config contains Anthropic provider configuration.
type Config struct {
	APIKey     string `env:"ANTHROPIC_API_KEY"`
	Model      string `env:"ANTHROPIC_MODEL"       envDefault:"claude-sonnet-4-5"`
	Timeout    int    `env:"ANTHROPIC_TIMEOUT"     envDefault:"30"`
	MaxRetries int    `env:"ANTHROPIC_MAX_RETRIES" envDefault:"0"`
}

// Provider implements the parse.Provider interface for Anthropic.
type Provider struct {
	client anthropic.Client
	model  string
	name   string
}

// NewProvider creates a new Anthropic parse provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Provider{
		client: anthropic.NewClient(opts...),
		model:  config.Model,
		name:   "anthropic",
	}, nil
}

// ParseWorkload extracts a structured workload payload from free text.
func (p *Provider) ParseWorkload(ctx context.Context, userText string) (map[string]any, error) {
	text, err := p.generateText(ctx, parse.ParseSystemPrompt, userText)
	if err != nil {
		return nil, err
	}
	return parse.ExtractJSONObject(text)
}

// Explain returns a plain-language explanation of a recommendation summary.
func (p *Provider) Explain(
	ctx context.Context,
	summary string,
	workload parse.WorkloadSpec,
) (string, error) {
	prompt := fmt.Sprintf(
		"Explain the deterministic recommendation in 4-6 concise bullet points. "+
			"Use these inputs and summary.\n\n"+
			"Workload: %.0f tokens/day, pattern %s, model %s\nSummary:\n%s",
		workload.TokensPerDay, workload.Pattern, workload.ModelKey, summary)
	return p.generateText(ctx, parse.ExplainSystemPrompt, prompt)
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) generateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling Anthropic API")

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxResponseTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		logger.Error("Anthropic API call failed", observability.Error(err))
		return "", fmt.Errorf("Anthropic API call failed: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}

	return "", errors.New("Anthropic response did not contain text output")
}
