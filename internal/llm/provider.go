// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm provides text-completion backends used by the machine
// affiliation classifier. Each backend implements Provider.
package llm

import (
	"context"
	"time"

	"github.com/pdiddy/papers-list/pkg/types"
)

// Provider is a text-completion backend.
type Provider interface {
	// Name returns the provider identifier ("openai", "anthropic", "ollama").
	Name() string

	// Complete sends one prompt and returns the generated text.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request is a single completion request.
type Request struct {
	// Prompt is the user prompt.
	Prompt string

	// System is an optional system instruction.
	System string

	// Model overrides the provider's configured model.
	Model string

	// MaxTokens limits the response length. Zero uses the provider default.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float32
}

// Response is the generated completion.
type Response struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds provider settings.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string

	// Timeout bounds each Complete call.
	Timeout time.Duration
}

const (
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 256
)

// ConfigFromTypes converts the run configuration into provider settings.
func ConfigFromTypes(c types.LLMConfig) Config {
	return Config{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Timeout:  c.Timeout,
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// resolve fills per-request defaults from the provider config.
func resolve(req Request, cfg Config, fallbackModel string) (model string, maxTokens int) {
	model = req.Model
	if model == "" {
		model = cfg.Model
	}
	if model == "" {
		model = fallbackModel
	}
	maxTokens = req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return model, maxTokens
}
