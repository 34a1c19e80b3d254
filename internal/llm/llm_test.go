// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantErr  bool
	}{
		{"ollama without key", Config{Provider: "ollama"}, "ollama", false},
		{"openai", Config{Provider: "OpenAI", APIKey: "sk"}, "openai", false},
		{"openai missing key", Config{Provider: "openai"}, "", true},
		{"anthropic", Config{Provider: "anthropic", APIKey: "ak"}, "anthropic", false},
		{"claude alias", Config{Provider: "claude", APIKey: "ak"}, "anthropic", false},
		{"anthropic missing key", Config{Provider: "anthropic"}, "", true},
		{"empty", Config{}, "", true},
		{"unknown", Config{Provider: "gemini"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestResolve(t *testing.T) {
	model, tokens := resolve(Request{}, Config{}, "fallback")
	assert.Equal(t, "fallback", model)
	assert.Equal(t, defaultMaxTokens, tokens)

	model, tokens = resolve(Request{Model: "req", MaxTokens: 70}, Config{Model: "cfg"}, "fallback")
	assert.Equal(t, "req", model)
	assert.Equal(t, 70, tokens)

	model, _ = resolve(Request{}, Config{Model: "cfg"}, "fallback")
	assert.Equal(t, "cfg", model)
}

func TestOllamaProvider_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req ollamaRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 40, req.Options.NumPredict)
		assert.Contains(t, req.Prompt, "Classify")

		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:           "mistral",
			Response:        "  1. academic\n2. non-academic\n",
			Done:            true,
			PromptEvalCount: 30,
			EvalCount:       8,
		})
	}))
	defer ts.Close()

	p, err := NewOllamaProvider(Config{BaseURL: ts.URL + "/", Timeout: time.Second})
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), Request{Prompt: "Classify these", MaxTokens: 40})
	require.NoError(t, err)
	assert.Equal(t, "1. academic\n2. non-academic", resp.Text)
	assert.Equal(t, 38, resp.TokensUsed)
}

func TestOllamaProvider_Error(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ollamaError{Error: "model 'mistral' not found"})
	}))
	defer ts.Close()

	p, err := NewOllamaProvider(Config{BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAnthropicProvider_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ak-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, anthropicDefaultModel, req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
		}

		_, _ = w.Write([]byte(`{
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "1. non-academic"}],
			"usage": {"input_tokens": 12, "output_tokens": 4}
		}`))
	}))
	defer ts.Close()

	old := anthropicAPIBase
	anthropicAPIBase = ts.URL
	defer func() { anthropicAPIBase = old }()

	p, err := NewAnthropicProvider(Config{APIKey: "ak-test"})
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), Request{Prompt: "Classify"})
	require.NoError(t, err)
	assert.Equal(t, "1. non-academic", resp.Text)
	assert.Equal(t, 16, resp.TokensUsed)
}

func TestAnthropicProvider_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer ts.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "bad", BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func TestOpenAIProvider_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": " 1. academic "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 3, "total_tokens": 23}
		}`))
	}))
	defer ts.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "sk-test", BaseURL: ts.URL, Model: "gpt-4o-mini"})
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), Request{Prompt: "Classify", System: "Be terse."})
	require.NoError(t, err)
	assert.Equal(t, "1. academic", resp.Text)
	assert.Equal(t, 23, resp.TokensUsed)
}
