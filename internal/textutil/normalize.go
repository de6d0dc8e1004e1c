package textutil

import (
	"strings"
	"unicode"
)

// Normalize collapses every whitespace run to a single space and trims the
// result.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FirstLine returns the text up to the first newline, without the newline.
func FirstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSuffix(s, "\r")
}

// Truncate shortens s to at most limit runes, appending suffix when anything
// was cut. The kept prefix is trimmed before the suffix is added.
func Truncate(s string, limit int, suffix string) string {
	runes := []rune(s)
	if limit < 0 || len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + suffix
}
