// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search fetches paper records, with their author affiliations,
// from literature APIs. Each API is a Backend selected by name.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/papers-list/internal/httputil"
	"github.com/pdiddy/papers-list/pkg/types"
)

// ErrEmptyQuery is returned when a query has no search terms.
var ErrEmptyQuery = errors.New("query is empty: provide search terms")

// Source names.
const (
	SourcePubMed   = "pubmed"
	SourceOpenAlex = "openalex"
)

// Backend searches a single literature API. Each backend implements this
// interface per the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query Query) ([]types.Paper, error)
}

// Query holds the search parameters.
type Query struct {
	// Text is the query in the source's own syntax.
	Text string

	// MaxResults bounds the number of papers returned.
	MaxResults int
}

// IsEmpty reports whether the query contains no searchable terms.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == ""
}

// NewBackend builds the backend named by cfg.Source with a throttled HTTP
// client. NCBI allows 3 requests per second, or 10 with an API key.
func NewBackend(cfg types.SearchConfig, logger *zap.Logger) (Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rps := cfg.RequestsPerSecond
	source := strings.ToLower(cfg.Source)
	if source == "" {
		source = SourcePubMed
	}
	if rps <= 0 && source == SourcePubMed {
		rps = 3
		if cfg.APIKey != "" {
			rps = 10
		}
	}

	client := httputil.NewClient(httputil.Options{
		Timeout:           cfg.Timeout,
		RequestsPerSecond: rps,
		MaxRetries:        cfg.MaxRetries,
		UserAgent:         cfg.UserAgent,
		Logger:            logger,
	})

	switch source {
	case SourcePubMed:
		return &PubMedBackend{
			Client:    client,
			Tool:      cfg.Tool,
			Email:     cfg.Email,
			APIKey:    cfg.APIKey,
			BatchSize: cfg.FetchBatchSize,
			Logger:    logger,
		}, nil
	case SourceOpenAlex:
		return &OpenAlexBackend{Client: client, Email: cfg.Email}, nil
	default:
		return nil, fmt.Errorf("unknown source %q (supported: %s, %s)", cfg.Source, SourcePubMed, SourceOpenAlex)
	}
}
