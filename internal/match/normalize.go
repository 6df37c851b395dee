package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for loose matching: it is case-folded
// and the separators _, -, . and space are removed.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}
