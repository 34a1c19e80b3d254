// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// mojibakeMarkers are sequences that appear when UTF-8 text was decoded as
// Windows-1252, e.g. "Ã©" for "é" and "â€™" for "’".
var mojibakeMarkers = []string{"Ã", "Â", "â€", "Å"}

// Repair undoes Windows-1252 mojibake and returns the text in NFC form.
// Text that does not re-encode to valid UTF-8 is only normalized.
func Repair(text string) string {
	out := text
	if looksLikeMojibake(text) {
		if b, _, err := transform.Bytes(charmap.Windows1252.NewEncoder(), []byte(text)); err == nil && utf8.Valid(b) {
			out = string(b)
		}
	}
	return norm.NFC.String(out)
}

func looksLikeMojibake(text string) bool {
	for _, m := range mojibakeMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
