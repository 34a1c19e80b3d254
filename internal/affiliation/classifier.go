// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation classifies paper authors as academic or non-academic
// from their free-text affiliations and aggregates the result per paper.
//
// Two strategies implement Classifier: KeywordClassifier matches the
// affiliation against an academic vocabulary and known academic email
// domains; BatchClassifier asks a language model about batches of
// affiliations. Callers pick one through configuration.
package affiliation

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/papers-list/pkg/types"
)

// Classifier turns the author list of one paper into its classification
// aggregate. Implementations never fail: an author that cannot be judged is
// treated as academic.
type Classifier interface {
	Classify(ctx context.Context, authors []types.Author) types.Classification
}

// Translator renders affiliation text in English. Implementations are best
// effort and return the input unchanged when translation is impossible.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// aggregate accumulates one paper's classification. It is local to a
// single Classify call.
type aggregate struct {
	result types.Classification
	seen   map[string]bool
}

func newAggregate() *aggregate {
	return &aggregate{
		result: types.Classification{
			NonAcademicAuthors:  []string{},
			CompanyAffiliations: []string{},
		},
		seen: make(map[string]bool),
	}
}

// flag records a non-academic author and its cleaned affiliation.
func (a *aggregate) flag(name, cleaned string) {
	a.result.NonAcademicAuthors = append(a.result.NonAcademicAuthors, name)
	if !a.seen[cleaned] {
		a.seen[cleaned] = true
		a.result.CompanyAffiliations = append(a.result.CompanyAffiliations, cleaned)
	}
}

// offerEmail sets the corresponding email unless one is already chosen.
func (a *aggregate) offerEmail(email string) {
	if email != "" && a.result.CorrespondingEmail == "" {
		a.result.CorrespondingEmail = email
	}
}

// KeywordClassifier is the default vocabulary-driven classifier.
type KeywordClassifier struct {
	detector   *Detector
	translator Translator
	logger     *zap.Logger
}

// NewKeywordClassifier builds a KeywordClassifier. A nil translator
// disables translation; a nil logger discards log output.
func NewKeywordClassifier(detector *Detector, translator Translator, logger *zap.Logger) *KeywordClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KeywordClassifier{
		detector:   detector,
		translator: translator,
		logger:     logger,
	}
}

// Classify walks the authors in order. The translated text only feeds the
// decision; the affiliation set always records the untranslated cleaned
// text. The first non-academic email in author order becomes the paper's
// corresponding email.
func (c *KeywordClassifier) Classify(ctx context.Context, authors []types.Author) types.Classification {
	agg := newAggregate()

	for _, author := range authors {
		email := ExtractEmail(author.Affiliation)
		cleaned := Clean(author.Affiliation)

		processed := cleaned
		if c.translator != nil {
			processed = c.translator.Translate(ctx, cleaned)
		}

		nonAcademic := c.detector.IsNonAcademic(processed, email)
		c.logger.Debug("classified author",
			zap.String("name", author.Name),
			zap.String("affiliation", cleaned),
			zap.String("processed", processed),
			zap.String("email", email),
			zap.Bool("non_academic", nonAcademic))

		if !nonAcademic {
			continue
		}
		agg.flag(author.Name, cleaned)
		if !c.detector.IsAcademicEmail(email) {
			agg.offerEmail(email)
		}
	}

	return agg.result
}
