// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates the provider named in config.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return asProvider(NewOpenAIProvider(config))
	case "anthropic", "claude":
		return asProvider(NewAnthropicProvider(config))
	case "ollama":
		return asProvider(NewOllamaProvider(config))
	case "":
		return nil, fmt.Errorf("no LLM provider configured (supported: openai, anthropic, ollama)")
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// asProvider keeps a failed constructor from yielding a non-nil interface
// holding a nil pointer.
func asProvider[P Provider](p P, err error) (Provider, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}
