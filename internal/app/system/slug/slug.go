// Package slug derives URL-safe workspace paths from display names.
//
// The algorithm: lowercase, strip combining diacritical marks, turn whitespace
// runs into single hyphens, drop everything outside [a-z0-9_-], collapse
// repeated hyphens, and trim hyphens from both ends. "Crème Brûlée!" becomes
// "creme-brulee".
package slug

import (
	"strings"
	"unicode"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// suffixAlphabet matches the character set paths are built from.
const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// SuffixLength is the length of the random collision suffix.
const SuffixLength = 5

// stripMarks decomposes characters and removes combining marks, so accented
// letters reduce to their base letter before the ASCII filter runs.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make returns the URL-safe path candidate for a workspace name.
//
// The result may be empty when the name contains nothing usable (all
// punctuation or emoji); callers fall back to Generate in that case.
func Make(name string) string {
	s := strings.ToLower(name)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	hyphen := false // pending separator, written before the next kept char
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '-':
			hyphen = true
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		}
		// everything else is dropped
	}
	return b.String()
}

// Suffix returns a random 5-character lowercase-alphanumeric string used to
// disambiguate a colliding path ("my-notes" -> "my-notes-x7k2q").
func Suffix() (string, error) {
	return gonanoid.Generate(suffixAlphabet, SuffixLength)
}

// Generate returns a random 8-character path for names that slugify to the
// empty string.
func Generate() (string, error) {
	return gonanoid.Generate(suffixAlphabet, 8)
}
