// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare reports where two result files disagree about which
// authors are non-academic, typically the keyword and LLM classifiers run
// over the same query.
package compare

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pdiddy/papers-list/internal/export"
)

const (
	idColumn      = "PubmedID"
	authorsColumn = "Non-academic Author(s)"
)

// Table maps a paper ID to its set of non-academic author names, keeping
// the file's row order.
type Table struct {
	order   []string
	authors map[string][]string
}

// Len returns the number of papers in the table.
func (t Table) Len() int { return len(t.order) }

// Authors returns the sorted author set of id.
func (t Table) Authors(id string) ([]string, bool) {
	a, ok := t.authors[id]
	return a, ok
}

// Mismatch is one paper whose author sets differ.
type Mismatch struct {
	ID    string
	Left  []string
	Right []string
}

// Report is the outcome of a comparison.
type Report struct {
	// Compared counts papers present in both tables.
	Compared int

	// Missing counts left-hand papers absent from the right-hand table.
	Missing int

	Mismatches []Mismatch
}

// LoadFile reads a result CSV written by the csv sink.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return Table{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Load reads result CSV rows from r. The header must contain the PubmedID
// and non-academic author columns. A later row with a repeated ID replaces
// the earlier one.
func Load(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return Table{}, fmt.Errorf("reading header: %w", err)
	}

	idIdx, authorsIdx := slices.Index(header, idColumn), slices.Index(header, authorsColumn)
	if idIdx < 0 || authorsIdx < 0 {
		return Table{}, fmt.Errorf("header must contain %q and %q columns", idColumn, authorsColumn)
	}

	t := Table{authors: make(map[string][]string)}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, err
		}

		id := rec[idIdx]
		if _, seen := t.authors[id]; !seen {
			t.order = append(t.order, id)
		}
		t.authors[id] = authorSet(rec[authorsIdx])
	}
	return t, nil
}

// authorSet splits a joined author field into a sorted, deduplicated set.
func authorSet(field string) []string {
	set := []string{}
	for _, name := range strings.Split(field, export.ListSeparator) {
		if name = strings.TrimSpace(name); name != "" {
			set = append(set, name)
		}
	}
	slices.Sort(set)
	return slices.Compact(set)
}

// Compare walks left in file order and compares author sets with right.
// Papers missing from right are counted, not reported as mismatches.
func Compare(left, right Table) Report {
	var rep Report
	for _, id := range left.order {
		r, ok := right.authors[id]
		if !ok {
			rep.Missing++
			continue
		}
		rep.Compared++

		l := left.authors[id]
		if !slices.Equal(l, r) {
			rep.Mismatches = append(rep.Mismatches, Mismatch{ID: id, Left: l, Right: r})
		}
	}
	return rep
}

// WriteMismatches writes the mismatches as CSV with the given labels for
// the two author columns.
func WriteMismatches(w io.Writer, mismatches []Mismatch, leftLabel, rightLabel string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{idColumn, leftLabel, rightLabel}); err != nil {
		return err
	}
	for _, m := range mismatches {
		rec := []string{
			m.ID,
			strings.Join(m.Left, export.ListSeparator),
			strings.Join(m.Right, export.ListSeparator),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
