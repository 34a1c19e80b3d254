// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/pdiddy/papers-list/internal/llm"
	"github.com/pdiddy/papers-list/pkg/types"
)

// batchPromptTmpl lists one affiliation per numbered line and asks for one
// label per line in the same order.
var batchPromptTmpl = template.Must(template.New("batch").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`Classify the following affiliations as 'academic' or 'non-academic':
{{range $i, $line := .Lines}}{{inc $i}}. {{$line}}
{{end}}
Respond in the format:
1. academic
2. non-academic
...
`))

// backoffBase controls the base duration for exponential backoff between
// batch retries. Tests override it.
var backoffBase = time.Second

const nonAcademicLabel = "non-academic"

// BatchOptions configures a BatchClassifier.
type BatchOptions struct {
	// BatchSize is the number of authors per prompt (default 5).
	BatchSize int

	// MaxRetries is how many times a failed call is repeated before the
	// batch is given up.
	MaxRetries int

	// Model overrides the provider's configured model.
	Model string
}

// BatchClassifier asks a language model to label affiliations in batches.
type BatchClassifier struct {
	provider llm.Provider
	opts     BatchOptions
	logger   *zap.Logger
}

// NewBatchClassifier builds a BatchClassifier on top of provider.
func NewBatchClassifier(provider llm.Provider, opts BatchOptions, logger *zap.Logger) *BatchClassifier {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchClassifier{provider: provider, opts: opts, logger: logger}
}

// batchEntry is one author prepared for a prompt.
type batchEntry struct {
	name    string
	cleaned string
	email   string
}

// Classify sends the authors to the model in batches. A batch whose call
// keeps failing leaves its authors academic. So does a response with fewer
// lines than the batch.
func (c *BatchClassifier) Classify(ctx context.Context, authors []types.Author) types.Classification {
	agg := newAggregate()

	for start := 0; start < len(authors); start += c.opts.BatchSize {
		end := min(start+c.opts.BatchSize, len(authors))

		entries := make([]batchEntry, 0, end-start)
		for _, a := range authors[start:end] {
			email := ExtractEmail(a.Affiliation)
			if email == "" {
				email = a.Email
			}
			entries = append(entries, batchEntry{
				name:    a.Name,
				cleaned: Clean(a.Affiliation),
				email:   email,
			})
		}

		labels, err := c.classifyBatch(ctx, entries)
		if err != nil {
			c.logger.Warn("batch classification failed, treating batch as academic",
				zap.Int("offset", start),
				zap.Int("size", len(entries)),
				zap.Error(err))
			continue
		}

		for j, entry := range entries {
			if j >= len(labels) || !strings.Contains(labels[j], nonAcademicLabel) {
				continue
			}
			agg.flag(entry.name, entry.cleaned)
			agg.offerEmail(entry.email)
		}
	}

	return agg.result
}

// classifyBatch returns the model's response lines for one batch.
func (c *BatchClassifier) classifyBatch(ctx context.Context, entries []batchEntry) ([]string, error) {
	prompt, err := renderBatchPrompt(entries)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	req := llm.Request{
		Prompt:    prompt,
		Model:     c.opts.Model,
		MaxTokens: 20 + 10*len(entries),
	}

	resp, err := c.completeWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("batch classified",
		zap.String("provider", c.provider.Name()),
		zap.Int("size", len(entries)),
		zap.String("response", resp.Text))

	return strings.Split(strings.ToLower(strings.TrimSpace(resp.Text)), "\n"), nil
}

// completeWithRetry calls the provider with exponential backoff.
func (c *BatchClassifier) completeWithRetry(ctx context.Context, req llm.Request) (*llm.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("after %d retries: %w", c.opts.MaxRetries, lastErr)
}

// renderBatchPrompt executes the batch template.
func renderBatchPrompt(entries []batchEntry) (string, error) {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.cleaned
		if domain := registrableDomain(e.email); domain != "" {
			lines[i] += " (email domain: " + domain + ")"
		}
	}

	var buf bytes.Buffer
	if err := batchPromptTmpl.Execute(&buf, struct{ Lines []string }{Lines: lines}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// registrableDomain reduces an email to its eTLD+1, so "a@mail.genentech.com"
// becomes "genentech.com". Domains the public suffix list cannot place are
// returned as is.
func registrableDomain(email string) string {
	domain := emailDomain(email)
	if domain == "" {
		return ""
	}
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(domain); err == nil {
		return etld1
	}
	return domain
}
