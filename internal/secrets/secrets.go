// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API keys from a directory of plain-text files,
// falling back to environment variables. Each file holds one secret: the
// filename is the key name and the trimmed contents are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Key file names.
const (
	NCBIAPIKey           = "ncbi-api-key"
	OpenAIAPIKey         = "openai-api-key"
	AnthropicAPIKey      = "anthropic-api-key"
	LibreTranslateAPIKey = "libretranslate-api-key"
)

// envFallbacks maps key names to the conventional environment variable
// consulted when no file provides the key.
var envFallbacks = map[string]string{
	NCBIAPIKey:           "NCBI_API_KEY",
	OpenAIAPIKey:         "OPENAI_API_KEY",
	AnthropicAPIKey:      "ANTHROPIC_API_KEY",
	LibreTranslateAPIKey: "LIBRETRANSLATE_API_KEY",
}

// Store holds the secrets loaded from disk.
type Store struct {
	values map[string]string
	getenv func(string) string
}

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty store. Unreadable files are logged and skipped.
func Load(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{values: map[string]string{}, getenv: os.Getenv}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s.values[name] = value
		}
	}
	return s, nil
}

// Get returns the secret from its file, else from its environment
// variable, else "".
func (s *Store) Get(name string) string {
	if v, ok := s.values[name]; ok {
		return v
	}
	if env, ok := envFallbacks[name]; ok && s.getenv != nil {
		return strings.TrimSpace(s.getenv(env))
	}
	return ""
}

// Len returns the number of secrets loaded from files.
func (s *Store) Len() int { return len(s.values) }
