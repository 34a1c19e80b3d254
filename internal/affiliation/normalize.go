// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

import (
	"regexp"
	"strings"
)

// emailPattern matches local@domain where the domain has at least two
// dot-separated labels. A trailing sentence period is not part of the match.
const emailPattern = `[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)+`

// boilerplateMarker is the PubMed phrase that precedes author emails.
const boilerplateMarker = "Electronic address:"

var (
	emailRe      = regexp.MustCompile(emailPattern)
	emailStripRe = regexp.MustCompile(`(?:` + regexp.QuoteMeta(boilerplateMarker) + `)?\s*` + emailPattern)
)

// Normalize collapses every run of whitespace to a single space and trims
// leading and trailing spaces, periods, and semicolons.
func Normalize(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	return strings.Trim(collapsed, " .;")
}

// ExtractEmail returns the first email-shaped substring of text, or "".
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// StripEmailAndBoilerplate removes every email in text along with an
// immediately preceding "Electronic address:" marker. The remainder is
// returned as-is; callers normalize it separately.
func StripEmailAndBoilerplate(text string) string {
	if !emailRe.MatchString(text) {
		return text
	}
	return emailStripRe.ReplaceAllString(text, "")
}

// Clean is the cleaned form of a raw affiliation: email and boilerplate
// removed, then normalized.
func Clean(raw string) string {
	return Normalize(StripEmailAndBoilerplate(raw))
}
