// Package names canonicalizes player display names so the same athlete
// resolves to one key no matter which provider spelled the name.
package names

import (
	"strings"
	"unicode"
)

// generational suffixes dropped during normalization, matched as whole words.
var suffixes = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"ii":  {},
	"iii": {},
	"iv":  {},
	"v":   {},
}

// Normalize converts a raw display name into its comparison key: lowercase,
// punctuation stripped, generational suffixes removed, whitespace collapsed.
// It is idempotent and maps empty input to empty output.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			b.WriteByte(' ')
		}
		// everything else (periods, apostrophes, commas) drops out
	}

	fields := strings.Fields(b.String())
	out := fields[:0]
	for _, f := range fields {
		if _, ok := suffixes[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
