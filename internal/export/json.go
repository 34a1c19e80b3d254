// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/papers-list/pkg/types"
)

// jsonRow is the JSON shape of one row. Lists stay lists.
type jsonRow struct {
	PubmedID            string   `json:"pubmed_id"`
	Title               string   `json:"title"`
	PublicationDate     string   `json:"publication_date"`
	NonAcademicAuthors  []string `json:"non_academic_authors"`
	CompanyAffiliations []string `json:"company_affiliations"`
	CorrespondingEmail  string   `json:"corresponding_email"`
}

// JSONSink buffers rows and writes them as one indented array on Close.
type JSONSink struct {
	dst  io.WriteCloser
	rows []jsonRow
}

// NewJSONSink returns a sink writing to dst.
func NewJSONSink(dst io.WriteCloser) *JSONSink {
	return &JSONSink{dst: dst, rows: []jsonRow{}}
}

// Write buffers one row.
func (s *JSONSink) Write(row types.Row) error {
	s.rows = append(s.rows, jsonRow{
		PubmedID:            row.ID,
		Title:               row.Title,
		PublicationDate:     row.PublicationDate,
		NonAcademicAuthors:  nonNil(row.NonAcademicAuthors),
		CompanyAffiliations: nonNil(row.CompanyAffiliations),
		CorrespondingEmail:  row.CorrespondingEmail,
	})
	return nil
}

// Close writes the buffered rows and closes the destination.
func (s *JSONSink) Close() error {
	data, err := json.MarshalIndent(s.rows, "", "  ")
	if err != nil {
		s.dst.Close()
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := s.dst.Write(append(data, '\n')); err != nil {
		s.dst.Close()
		return fmt.Errorf("writing JSON: %w", err)
	}
	return s.dst.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
