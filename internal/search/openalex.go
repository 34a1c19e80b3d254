// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/papers-list/internal/affiliation"
	"github.com/pdiddy/papers-list/internal/httputil"
	"github.com/pdiddy/papers-list/pkg/types"
)

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

const openAlexMaxPerPage = 200

// OpenAlexBackend queries the OpenAlex works API, which exposes each
// author's raw affiliation strings.
type OpenAlexBackend struct {
	Client *httputil.Client
	// Email is sent as mailto parameter for polite pool access.
	Email string
}

// Name returns the backend identifier.
func (b *OpenAlexBackend) Name() string { return SourceOpenAlex }

// Search queries the OpenAlex API and returns papers in relevance order.
func (b *OpenAlexBackend) Search(ctx context.Context, query Query) ([]types.Paper, error) {
	if query.IsEmpty() {
		return nil, ErrEmptyQuery
	}

	perPage := query.MaxResults
	if perPage <= 0 {
		perPage = 25
	}
	if perPage > openAlexMaxPerPage {
		perPage = openAlexMaxPerPage
	}

	params := url.Values{
		"search":   {query.Text},
		"per_page": {strconv.Itoa(perPage)},
		"page":     {"1"},
		"select":   {"id,ids,doi,title,publication_year,authorships"},
	}
	if b.Email != "" {
		params.Set("mailto", b.Email)
	}

	body, err := b.Client.Get(ctx, openAlexSearchBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}

	var oar openAlexResponse
	if err := json.Unmarshal(body, &oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	papers := make([]types.Paper, 0, len(oar.Results))
	for _, work := range oar.Results {
		papers = append(papers, work.toPaper())
	}
	return papers, nil
}

func (w openAlexWork) toPaper() types.Paper {
	p := types.Paper{
		ID:              w.identifier(),
		Title:           normalizeSpace(w.Title),
		PublicationDate: types.UnknownDate,
		Source:          SourceOpenAlex,
	}
	if w.PublicationYear > 0 {
		p.PublicationDate = strconv.Itoa(w.PublicationYear)
	}

	for _, a := range w.Authorships {
		aff := ""
		if len(a.RawAffiliationStrings) > 0 {
			aff = a.RawAffiliationStrings[0]
		} else if len(a.Institutions) > 0 {
			aff = a.Institutions[0].DisplayName
		}
		p.Authors = append(p.Authors, types.Author{
			Name:        a.Author.DisplayName,
			Affiliation: aff,
			Email:       affiliation.ExtractEmail(aff),
		})
	}
	return p
}

// identifier prefers the PMID so rows join with PubMed output, then the
// bare DOI, then the OpenAlex work ID.
func (w openAlexWork) identifier() string {
	if w.IDs.PMID != "" {
		return strings.TrimPrefix(w.IDs.PMID, "https://pubmed.ncbi.nlm.nih.gov/")
	}
	if w.DOI != "" {
		return strings.TrimPrefix(w.DOI, "https://doi.org/")
	}
	return strings.TrimPrefix(w.ID, "https://openalex.org/")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID              string               `json:"id"`
	IDs             openAlexIDs          `json:"ids"`
	Title           string               `json:"title"`
	DOI             string               `json:"doi"`
	PublicationYear int                  `json:"publication_year"`
	Authorships     []openAlexAuthorship `json:"authorships"`
}

type openAlexIDs struct {
	PMID string `json:"pmid"`
}

type openAlexAuthorship struct {
	Author                openAlexAuthor        `json:"author"`
	Institutions          []openAlexInstitution `json:"institutions"`
	RawAffiliationStrings []string              `json:"raw_affiliation_strings"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexInstitution struct {
	DisplayName string `json:"display_name"`
}
