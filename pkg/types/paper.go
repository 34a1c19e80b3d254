// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the papers-list pipeline:
// the author and paper records produced by metadata sources, the per-paper
// classification aggregate, and the row shape consumed by result sinks.
package types

// UnknownDate is the publication date recorded when a source has no year.
const UnknownDate = "Unknown"

// Author is one author entry of a paper as delivered by a metadata source.
// Records are treated as immutable input by the classifiers.
type Author struct {
	// Name is the display name ("ForeName LastName" or a collective name).
	Name string `json:"name" yaml:"name"`

	// Affiliation is the raw, free-text affiliation. May be empty.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Email is the first email found in the affiliation by the source. May be empty.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Paper holds the metadata of one search hit.
type Paper struct {
	// ID is the stable identifier (PMID for PubMed, PMID/DOI/OpenAlex ID for OpenAlex).
	ID string `json:"id" yaml:"id"`

	// Title is the article title with inline markup flattened.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is the publication year, or UnknownDate.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// Source identifies which backend produced the record (e.g. "pubmed", "openalex").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Classification is the per-paper aggregate produced by an author classifier.
// It is built fresh for each paper and not mutated after it is returned.
type Classification struct {
	// NonAcademicAuthors lists flagged author names in input order.
	// Duplicate names from duplicate author entries are preserved.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations holds the unique cleaned affiliations of flagged
	// authors, in first-seen order.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	// CorrespondingEmail is the first non-academic email found, or "".
	CorrespondingEmail string `json:"corresponding_email" yaml:"corresponding_email"`
}

// Row is a paper together with its classification, ready for a sink.
type Row struct {
	Paper          `yaml:",inline"`
	Classification `yaml:",inline"`
}
