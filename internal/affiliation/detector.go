// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

import (
	"regexp"
	"strings"
)

// wordChar is the class of characters that continue a word. Go's \b only
// knows ASCII, which would miss keywords such as "université".
const wordChar = `\p{L}\p{M}\p{N}_`

// Detector decides whether an affiliation is academic. It is safe for
// concurrent use.
type Detector struct {
	keywords *regexp.Regexp // nil when the vocabulary has no keywords
	suffixes []string
}

// NewDetector compiles the vocabulary into a Detector.
func NewDetector(v Vocabulary) *Detector {
	d := &Detector{}

	var alts []string
	for _, kw := range v.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		alts = append(alts, regexp.QuoteMeta(kw))
	}
	if len(alts) > 0 {
		d.keywords = regexp.MustCompile(
			`(?:^|[^` + wordChar + `])(?:` + strings.Join(alts, "|") + `)(?:[^` + wordChar + `]|$)`)
	}

	for _, s := range v.EmailSuffixes {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			d.suffixes = append(d.suffixes, s)
		}
	}
	return d
}

// emailDomain returns the lower-cased text after the last "@", or "".
func emailDomain(email string) string {
	i := strings.LastIndex(email, "@")
	if i < 0 {
		return ""
	}
	return strings.ToLower(email[i+1:])
}

// IsAcademicEmail reports whether the email's domain ends with an academic suffix.
func (d *Detector) IsAcademicEmail(email string) bool {
	domain := emailDomain(email)
	if domain == "" {
		return false
	}
	for _, s := range d.suffixes {
		if strings.HasSuffix(domain, s) {
			return true
		}
	}
	return false
}

// HasAcademicKeyword reports whether the affiliation contains a vocabulary
// keyword as a whole word.
func (d *Detector) HasAcademicKeyword(affiliation string) bool {
	if d.keywords == nil {
		return false
	}
	return d.keywords.MatchString(strings.ToLower(affiliation))
}

// IsNonAcademic classifies an affiliation. An academic email wins over any
// affiliation text. Otherwise the absence of an academic keyword counts as
// non-academic, so an empty affiliation with no email is non-academic.
func (d *Detector) IsNonAcademic(affiliation, email string) bool {
	hasKeyword := d.HasAcademicKeyword(affiliation)
	if email != "" && d.IsAcademicEmail(email) {
		return false
	}
	return !hasKeyword
}
