// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/papers-list/internal/httputil"
	"github.com/pdiddy/papers-list/pkg/types"
)

// eutilsBase is the NCBI E-utilities root. Declared as a var so tests can
// substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const defaultFetchBatch = 200

// PubMedBackend queries PubMed through ESearch (IDs, JSON) and EFetch
// (records, XML).
type PubMedBackend struct {
	Client *httputil.Client

	// Tool and Email identify the client to NCBI.
	Tool  string
	Email string

	// APIKey is optional and raises NCBI's rate limit.
	APIKey string

	// BatchSize is the number of IDs per EFetch request (default 200).
	BatchSize int

	// XMLDump, when set, receives every raw EFetch response.
	XMLDump io.Writer

	Logger *zap.Logger
}

// Name returns the backend identifier.
func (b *PubMedBackend) Name() string { return SourcePubMed }

// Search resolves the query to PMIDs and fetches their records in batches.
// Records come back in ESearch relevance order.
func (b *PubMedBackend) Search(ctx context.Context, query Query) ([]types.Paper, error) {
	if query.IsEmpty() {
		return nil, ErrEmptyQuery
	}
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ids, err := b.esearch(ctx, query)
	if err != nil {
		return nil, err
	}
	logger.Debug("esearch complete", zap.String("query", query.Text), zap.Int("ids", len(ids)))
	if len(ids) == 0 {
		return nil, nil
	}

	batch := b.BatchSize
	if batch <= 0 {
		batch = defaultFetchBatch
	}

	var papers []types.Paper
	for start := 0; start < len(ids); start += batch {
		end := min(start+batch, len(ids))
		chunk, err := b.efetch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		logger.Debug("efetch complete", zap.Int("offset", start), zap.Int("records", len(chunk)))
		papers = append(papers, chunk...)
	}
	return papers, nil
}

type esearchResponse struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
		Error  string   `json:"ERROR"`
	} `json:"esearchresult"`
	Error string `json:"error"`
}

func (b *PubMedBackend) esearch(ctx context.Context, query Query) ([]string, error) {
	params := b.params()
	params.Set("term", query.Text)
	params.Set("retmode", "json")
	if query.MaxResults > 0 {
		params.Set("retmax", strconv.Itoa(query.MaxResults))
	}

	body, err := b.Client.Get(ctx, eutilsBase+"/esearch.fcgi?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("PubMed ESearch request: %w", err)
	}

	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing PubMed ESearch response: %w", err)
	}
	if msg := firstNonEmpty(resp.Error, resp.Result.Error); msg != "" {
		return nil, fmt.Errorf("PubMed ESearch error: %s", msg)
	}

	ids := resp.Result.IDList
	if query.MaxResults > 0 && len(ids) > query.MaxResults {
		ids = ids[:query.MaxResults]
	}
	return ids, nil
}

func (b *PubMedBackend) efetch(ctx context.Context, ids []string) ([]types.Paper, error) {
	params := b.params()
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	body, err := b.Client.Get(ctx, eutilsBase+"/efetch.fcgi?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("PubMed EFetch request: %w", err)
	}

	if b.XMLDump != nil {
		if _, err := b.XMLDump.Write(body); err != nil {
			return nil, fmt.Errorf("saving EFetch XML: %w", err)
		}
	}

	papers, err := ParsePubMedXML(body)
	if err != nil {
		return nil, fmt.Errorf("parsing PubMed EFetch response: %w", err)
	}
	return papers, nil
}

// params returns the query parameters common to every E-utilities call.
func (b *PubMedBackend) params() url.Values {
	params := url.Values{"db": {"pubmed"}}
	if b.Tool != "" {
		params.Set("tool", b.Tool)
	}
	if b.Email != "" {
		params.Set("email", b.Email)
	}
	if b.APIKey != "" {
		params.Set("api_key", b.APIKey)
	}
	return params
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
