// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Vocabulary is the reference data the Detector matches against. It is
// read-only once a Detector has been built from it.
type Vocabulary struct {
	// Keywords are whole-word academic markers, matched case-insensitively.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// EmailSuffixes are academic domain endings such as ".edu" or ".ac.uk".
	EmailSuffixes []string `json:"email_suffixes" yaml:"email_suffixes"`
}

// DefaultVocabulary returns a fresh copy of the built-in vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Keywords: []string{
			"university", "université", "universitat", "college", "faculty", "school",
			"institute", "institutions", "academy", "department", "departments",
			"center", "centre", "hospital", "clinics",
			"research institute", "medical center", "graduate school", "public health", "labs",
		},
		EmailSuffixes: []string{
			".edu", ".ac.uk", ".ac.in", ".edu.au", ".ac.jp", ".ac.kr", ".edu.cn",
			".ac.za", ".edu.sg", ".edu.my", ".ac.ir", ".ac.id", ".edu.br", ".edu.mx",
		},
	}
}

// LoadVocabulary reads a YAML vocabulary file. A list that is absent from
// the file keeps its built-in default; an explicitly empty list disables it.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}

	var raw struct {
		Keywords      *[]string `yaml:"keywords"`
		EmailSuffixes *[]string `yaml:"email_suffixes"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Vocabulary{}, fmt.Errorf("parsing vocabulary %s: %w", path, err)
	}

	v := DefaultVocabulary()
	if raw.Keywords != nil {
		v.Keywords = *raw.Keywords
	}
	if raw.EmailSuffixes != nil {
		v.EmailSuffixes = *raw.EmailSuffixes
	}
	return v, nil
}
