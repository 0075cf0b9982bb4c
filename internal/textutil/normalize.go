package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s and strips diacritical marks ("Ñuñoa" -> "nunoa").
// All vocabulary matching in the agent pipeline compares normalized forms,
// so user text matches regardless of accents or casing.
func Normalize(s string) string {
	// The transform chain carries state, so build it per call rather than
	// sharing one across goroutines.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
