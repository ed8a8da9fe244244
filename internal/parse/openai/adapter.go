// Package openai provides a parse provider backed by the OpenAI chat
// completions API using the official SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/inferenceatlas/atlas/internal/observability"
	"github.com/inferenceatlas/atlas/internal/parse"
)

// Config contains OpenAI provider configuration.
// All fields map to OpenAI SDK options:
//   - APIKey: Maps to option.WithAPIKey()
//   - BaseURL: Maps to option.WithBaseURL()
//   - Timeout: Maps to option.WithRequestTimeout() (in seconds)
//   - MaxRetries: Maps to option.WithMaxRetries()
type Config struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	BaseURL    string `env:"OPENAI_BASE_URL"    envDefault:"https://api.openai.com/v1"`
	Model      string `env:"OPENAI_MODEL"       envDefault:"gpt-4o-mini"`
	Timeout    int    `env:"OPENAI_TIMEOUT"     envDefault:"30"`
	MaxRetries int    `env:"OPENAI_MAX_RETRIES" envDefault:"0"`
}

// Provider implements the parse.Provider interface for OpenAI.
type Provider struct {
	client openai.Client
	model  string
	name   string
}

// NewProvider creates a new OpenAI parse provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		model:  config.Model,
		name:   "openai",
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
	logger.Debug("calling OpenAI API")

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("OpenAI response did not contain text output")
	}

	return resp.Choices[0].Message.Content, nil
}
