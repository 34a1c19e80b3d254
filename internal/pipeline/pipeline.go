// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one query end to end: fetch papers, classify each
// paper's authors, and stream the rows to a sink.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/papers-list/internal/affiliation"
	"github.com/pdiddy/papers-list/internal/export"
	"github.com/pdiddy/papers-list/internal/search"
	"github.com/pdiddy/papers-list/pkg/types"
)

// Result summarizes a run.
type Result struct {
	// Fetched is the number of papers the source returned.
	Fetched int

	// Written is the number of rows handed to the sink.
	Written int

	// Flagged is the number of papers with at least one non-academic author.
	Flagged int
}

// Pipeline wires a source, a classifier, and a sink. Papers are processed
// one at a time in source order.
type Pipeline struct {
	Source     search.Backend
	Classifier affiliation.Classifier
	Sink       export.Sink

	// Progress receives one status line per paper. Nil discards them.
	Progress io.Writer

	Logger *zap.Logger
}

// Run executes the query. Cancellation is checked before and after each
// paper is classified, so a paper interrupted mid-classification is never
// written; rows already written stay in the sink. The caller owns closing the sink.
func (p *Pipeline) Run(ctx context.Context, query search.Query) (Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	progress := p.Progress
	if progress == nil {
		progress = io.Discard
	}

	var res Result

	papers, err := p.Source.Search(ctx, query)
	if err != nil {
		return res, fmt.Errorf("searching %s: %w", p.Source.Name(), err)
	}
	res.Fetched = len(papers)
	logger.Info("fetched papers",
		zap.String("source", p.Source.Name()),
		zap.String("query", query.Text),
		zap.Int("papers", len(papers)))

	for i, paper := range papers {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("stopped after %d of %d papers: %w", res.Written, len(papers), err)
		}

		cls := p.Classifier.Classify(ctx, paper.Authors)
		// A classifier interrupted mid-paper degrades to academic; drop the row.
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("stopped after %d of %d papers: %w", res.Written, len(papers), err)
		}
		if err := p.Sink.Write(types.Row{Paper: paper, Classification: cls}); err != nil {
			return res, err
		}
		res.Written++

		status := "academic"
		if len(cls.NonAcademicAuthors) > 0 {
			res.Flagged++
			status = fmt.Sprintf("%d non-academic", len(cls.NonAcademicAuthors))
		}
		fmt.Fprintf(progress, "[%d/%d] %s: %s\n", i+1, len(papers), paper.ID, status)
	}

	return res, nil
}
