// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/papers-list/internal/affiliation"
	"github.com/pdiddy/papers-list/pkg/types"
)

// leadingYear finds the year in a MedlineDate such as "1998 Dec-1999 Jan".
var leadingYear = regexp.MustCompile(`\b(1[89]|20)\d{2}\b`)

// ParsePubMedXML converts an EFetch PubmedArticleSet into papers, in
// document order. Missing fields become empty strings; a missing year
// becomes types.UnknownDate.
func ParsePubMedXML(data []byte) ([]types.Paper, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("reading XML: %w", err)
	}

	var papers []types.Paper
	for _, article := range doc.FindElements("//PubmedArticle") {
		paper := types.Paper{
			ID:              childText(article, ".//PMID"),
			Title:           normalizeSpace(fullText(article.FindElement(".//ArticleTitle"))),
			PublicationDate: publicationYear(article.FindElement(".//PubDate")),
			Source:          SourcePubMed,
		}

		for _, author := range article.FindElements(".//AuthorList/Author") {
			paper.Authors = append(paper.Authors, parseAuthor(author))
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

func parseAuthor(el *etree.Element) types.Author {
	name := strings.TrimSpace(childText(el, "ForeName") + " " + childText(el, "LastName"))
	if name == "" {
		name = normalizeSpace(fullText(el.FindElement("CollectiveName")))
	}

	aff := childText(el, ".//AffiliationInfo/Affiliation")
	return types.Author{
		Name:        name,
		Affiliation: aff,
		Email:       affiliation.ExtractEmail(aff),
	}
}

// publicationYear returns PubDate/Year, else the first year inside
// PubDate/MedlineDate, else types.UnknownDate.
func publicationYear(pubDate *etree.Element) string {
	if pubDate == nil {
		return types.UnknownDate
	}
	if year := childText(pubDate, "Year"); year != "" {
		return year
	}
	if m := leadingYear.FindString(childText(pubDate, "MedlineDate")); m != "" {
		return m
	}
	return types.UnknownDate
}

// childText returns the trimmed text of the first element matching path.
func childText(el *etree.Element, path string) string {
	child := el.FindElement(path)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// fullText concatenates all character data under el, including text
// inside inline markup such as <i> or <sup>.
func fullText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var sb strings.Builder
	iterText(el, &sb)
	return sb.String()
}

func iterText(el *etree.Element, sb *strings.Builder) {
	sb.WriteString(el.Text())
	for _, child := range el.ChildElements() {
		iterText(child, sb)
		sb.WriteString(child.Tail())
	}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
