// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pdiddy/papers-list/pkg/types"
)

// CSVSink streams rows as CSV, flushing after every row so a partial run
// leaves a readable file.
type CSVSink struct {
	dst io.WriteCloser
	w   *csv.Writer
}

// NewCSVSink writes the header row and returns the sink.
func NewCSVSink(dst io.WriteCloser) (*CSVSink, error) {
	s := &CSVSink{dst: dst, w: csv.NewWriter(dst)}
	if err := s.writeRecord(Columns); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	return s, nil
}

// Write appends one row.
func (s *CSVSink) Write(row types.Row) error {
	if err := s.writeRecord(Record(row)); err != nil {
		return fmt.Errorf("writing CSV row %s: %w", row.ID, err)
	}
	return nil
}

func (s *CSVSink) writeRecord(record []string) error {
	if err := s.w.Write(record); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

// Close flushes and closes the destination.
func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.dst.Close()
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return s.dst.Close()
}
