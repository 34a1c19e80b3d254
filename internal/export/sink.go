// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes classified papers as CSV, XLSX, or JSON rows.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/papers-list/pkg/types"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// ListSeparator joins multi-valued fields in tabular output.
const ListSeparator = "; "

// Columns is the header row of tabular output, in order.
var Columns = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// Sink consumes rows one at a time. Close flushes buffered output and
// releases the destination; rows written before a failed or cancelled run
// remain valid once Close returns.
type Sink interface {
	Write(row types.Row) error
	Close() error
}

// Record renders a row as tabular fields in Columns order. Empty
// aggregates become empty strings.
func Record(row types.Row) []string {
	return []string{
		row.ID,
		row.Title,
		row.PublicationDate,
		strings.Join(row.NonAcademicAuthors, ListSeparator),
		strings.Join(row.CompanyAffiliations, ListSeparator),
		row.CorrespondingEmail,
	}
}

// ResolveFormat returns format if set, otherwise the format implied by the
// file extension, otherwise CSV.
func ResolveFormat(path, format string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			format = FormatXLSX
		case ".json":
			format = FormatJSON
		default:
			format = FormatCSV
		}
	}

	switch f := strings.ToLower(format); f {
	case FormatCSV, FormatXLSX, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (supported: csv, xlsx, json)", format)
	}
}

// Open creates the sink for path in the given format. An empty path
// writes to stdout, which XLSX does not support.
func Open(path, format string, stdout io.Writer) (Sink, error) {
	format, err := ResolveFormat(path, format)
	if err != nil {
		return nil, err
	}

	if format == FormatXLSX {
		if path == "" {
			return nil, fmt.Errorf("xlsx output requires a file path")
		}
		return NewXLSXSink(path), nil
	}

	var w io.WriteCloser = nopCloser{stdout}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating output file: %w", err)
		}
		w = f
	}

	if format == FormatJSON {
		return NewJSONSink(w), nil
	}
	return NewCSVSink(w)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
