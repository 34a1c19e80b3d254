// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultDetector() *Detector {
	return NewDetector(DefaultVocabulary())
}

func TestIsAcademicEmail(t *testing.T) {
	d := defaultDetector()
	tests := []struct {
		email string
		want  bool
	}{
		{"j.smith@university.edu", true},
		{"J.Smith@MIT.EDU", true},
		{"a@ox.ac.uk", true},
		{"b@tsinghua.edu.cn", true},
		{"c@usp.edu.br", true},
		{"jane.doe@modernatx.com", false},
		{"x@edu.com", false},
		{"no-at-sign.edu", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsAcademicEmail(tt.email))
		})
	}
}

func TestHasAcademicKeyword(t *testing.T) {
	d := defaultDetector()
	tests := []struct {
		name        string
		affiliation string
		want        bool
	}{
		{"university", "Department of Biology, Springfield University", true},
		{"multi-word keyword", "Broad Research Institute", true},
		{"accented keyword", "Université de Montréal", true},
		{"accented keyword lowercase mid-string", "laboratoire, université paris-saclay", true},
		{"hospital", "Massachusetts General Hospital, Boston", true},
		{"no keyword", "Acme Pharmaceuticals Inc.", false},
		{"substring only", "Universityville Biotech", false},
		{"keyword inside word", "Schoolhouse Analytics", false},
		{"plural not in list", "Biogen Hospitals Group", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.HasAcademicKeyword(tt.affiliation))
		})
	}
}

func TestIsNonAcademic(t *testing.T) {
	d := defaultDetector()
	tests := []struct {
		name        string
		affiliation string
		email       string
		want        bool
	}{
		{"academic email overrides commercial text", "Acme Pharmaceuticals Inc.", "j.smith@university.edu", false},
		{"academic email with empty text", "", "j.smith@university.edu", false},
		{"commercial text no email", "Acme Pharmaceuticals Inc.", "", true},
		{"commercial text commercial email", "Acme Pharmaceuticals Inc.", "a@acme.com", true},
		{"academic keyword no email", "Department of Biology, Springfield University", "", false},
		{"academic keyword commercial email", "Department of Research, Pfizer", "a@pfizer.com", false},
		{"empty affiliation and email", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsNonAcademic(tt.affiliation, tt.email))
		})
	}
}

func TestIsNonAcademic_EmptyAffiliationIsNonAcademic(t *testing.T) {
	// Deliberately preserved: nothing academic was found, so the author is flagged.
	assert.True(t, defaultDetector().IsNonAcademic("", ""))
}

func TestNewDetector_CustomVocabulary(t *testing.T) {
	d := NewDetector(Vocabulary{
		Keywords:      []string{"  Klinikum ", "", "C++ Lab"},
		EmailSuffixes: []string{".DE"},
	})

	assert.True(t, d.HasAcademicKeyword("Klinikum rechts der Isar"))
	assert.True(t, d.HasAcademicKeyword("the c++ lab, Berlin"))
	assert.False(t, d.HasAcademicKeyword("Springfield University"))
	assert.True(t, d.IsAcademicEmail("x@tum.de"))
	assert.False(t, d.IsAcademicEmail("x@mit.edu"))
}

func TestNewDetector_EmptyVocabulary(t *testing.T) {
	d := NewDetector(Vocabulary{})

	assert.False(t, d.HasAcademicKeyword("Springfield University"))
	assert.False(t, d.IsAcademicEmail("x@mit.edu"))
	assert.True(t, d.IsNonAcademic("Springfield University", "x@mit.edu"))
}
