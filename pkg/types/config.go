// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "papers-list/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the metadata source.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Source selects the backend: "pubmed" (default) or "openalex".
	Source string `json:"source" yaml:"source" mapstructure:"source"`

	// MaxResults bounds the number of papers returned (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Email is sent to NCBI (email=) and OpenAlex (mailto=) as the contact address.
	Email string `json:"email" yaml:"email" mapstructure:"email"`

	// Tool identifies the client to NCBI E-utilities.
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`

	// APIKey is an optional NCBI API key that raises the rate limit to 10 req/s.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// RequestsPerSecond overrides the request rate. Zero picks the NCBI default
	// (3 req/s, or 10 req/s with an API key).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// FetchBatchSize is the number of IDs sent per EFetch request (default 200).
	FetchBatchSize int `json:"fetch_batch_size" yaml:"fetch_batch_size" mapstructure:"fetch_batch_size"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// TranslationConfig holds settings for the optional affiliation translator.
type TranslationConfig struct {
	// Enabled turns translation of non-English affiliations on.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Endpoint is the LibreTranslate base URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// APIKey is the optional LibreTranslate API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Timeout bounds each detect/translate call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// CacheTTL is how long translated strings are kept in memory.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// Classifier strategies.
const (
	StrategyKeyword = "keyword"
	StrategyLLM     = "llm"
)

// ClassifierConfig selects and configures the author classifier.
type ClassifierConfig struct {
	// Strategy is "keyword" (default) or "llm".
	Strategy string `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// VocabularyFile optionally replaces the built-in academic vocabulary.
	VocabularyFile string `json:"vocabulary_file,omitempty" yaml:"vocabulary_file,omitempty" mapstructure:"vocabulary_file"`
}

// LLMConfig holds settings for the batch machine classifier.
type LLMConfig struct {
	// Provider is "ollama" (default), "openai", or "anthropic".
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the provider-specific model identifier. Empty picks the
	// provider default (mistral for Ollama).
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey authenticates against hosted providers.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Timeout bounds each completion call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// BatchSize is the number of affiliations per prompt (default 5).
	BatchSize int `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`

	// MaxRetries is how many times a failed batch is retried (default 1).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// OutputConfig controls where and how rows are written.
type OutputConfig struct {
	// File is the output path. Empty writes to stdout.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`

	// Format is "csv", "xlsx", or "json". Empty infers it from File.
	Format string `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format"`
}

// Config groups all settings for one run.
type Config struct {
	Search      SearchConfig      `json:"search" yaml:"search" mapstructure:"search"`
	Translation TranslationConfig `json:"translation" yaml:"translation" mapstructure:"translation"`
	Classifier  ClassifierConfig  `json:"classifier" yaml:"classifier" mapstructure:"classifier"`
	LLM         LLMConfig         `json:"llm" yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `json:"output" yaml:"output" mapstructure:"output"`
	Debug       bool              `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "papers-list/0.1",
			},
			Source:         "pubmed",
			MaxResults:     50,
			Tool:           "papers-list",
			FetchBatchSize: 200,
			MaxRetries:     5,
		},
		Translation: TranslationConfig{
			Endpoint: "https://libretranslate.com",
			Timeout:  10 * time.Second,
			CacheTTL: time.Hour,
		},
		Classifier: ClassifierConfig{
			Strategy: StrategyKeyword,
		},
		LLM: LLMConfig{
			Provider:   "ollama",
			Timeout:    60 * time.Second,
			BatchSize:  5,
			MaxRetries: 1,
		},
	}
}
