// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate renders non-English affiliation text in English. It
// repairs encoding damage first, then asks a LibreTranslate server to
// detect and translate the language.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/papers-list/internal/affiliation"
	"github.com/pdiddy/papers-list/internal/httputil"
	"github.com/pdiddy/papers-list/pkg/types"
)

const targetLanguage = "en"

// LibreTranslator implements affiliation.Translator against the
// LibreTranslate HTTP API. Failures are logged and never surface.
type LibreTranslator struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	client   *httputil.Client
	logger   *zap.Logger
}

// NewLibreTranslator builds a translator from cfg. A nil logger discards
// log output.
func NewLibreTranslator(cfg types.TranslationConfig, logger *zap.Logger) *LibreTranslator {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LibreTranslator{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		timeout:  timeout,
		client:   httputil.NewClient(httputil.Options{Timeout: timeout, MaxRetries: 2, Logger: logger}),
		logger:   logger,
	}
}

type detectRequest struct {
	Q      string `json:"q"`
	APIKey string `json:"api_key,omitempty"`
}

type detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type apiError struct {
	Error string `json:"error"`
}

// Translate returns text in English, normalized. Empty input is returned
// unchanged without a network call.
func (t *LibreTranslator) Translate(ctx context.Context, text string) string {
	fixed := Repair(text)
	if strings.TrimSpace(fixed) == "" {
		return text
	}

	lang, err := t.detect(ctx, fixed)
	if err != nil {
		t.logger.Warn("language detection failed", zap.String("text", fixed), zap.Error(err))
		return affiliation.Normalize(fixed)
	}
	if lang == targetLanguage {
		t.logger.Debug("no translation needed", zap.String("text", fixed))
		return affiliation.Normalize(fixed)
	}

	translated, err := t.translate(ctx, fixed, lang)
	if err != nil {
		t.logger.Warn("translation failed", zap.String("text", fixed), zap.String("language", lang), zap.Error(err))
		return affiliation.Normalize(fixed)
	}

	t.logger.Debug("translated affiliation",
		zap.String("original", text),
		zap.String("fixed", fixed),
		zap.String("detected", lang),
		zap.String("english", translated))
	return affiliation.Normalize(translated)
}

// detect returns the most confident language code for text.
func (t *LibreTranslator) detect(ctx context.Context, text string) (string, error) {
	var detections []detection
	if err := t.post(ctx, "/detect", detectRequest{Q: text, APIKey: t.apiKey}, &detections); err != nil {
		return "", err
	}
	if len(detections) == 0 {
		return "", fmt.Errorf("no language detected")
	}

	best := detections[0]
	for _, d := range detections[1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	return strings.ToLower(best.Language), nil
}

func (t *LibreTranslator) translate(ctx context.Context, text, source string) (string, error) {
	var resp translateResponse
	req := translateRequest{Q: text, Source: source, Target: targetLanguage, Format: "text", APIKey: t.apiKey}
	if err := t.post(ctx, "/translate", req, &resp); err != nil {
		return "", err
	}
	if resp.TranslatedText == "" {
		return "", fmt.Errorf("empty translation")
	}
	return resp.TranslatedText, nil
}

// post sends a JSON request under the per-call timeout and decodes the
// JSON response into out.
func (t *LibreTranslator) post(ctx context.Context, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%s returned %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
