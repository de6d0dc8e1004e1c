// Package segment finds scene boundaries in imported screenplay text.
package segment

import (
	"regexp"
	"strings"
)

var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(INT\.|EXT\.|INT/EXT\.|I/E\.)`),
	regexp.MustCompile(`(?i)^\s*CENA\s*\d+`),
	regexp.MustCompile(`(?i)^\s*SCENE\s*\d+`),
}

// Boundary is a detected scene range in rune offsets.
type Boundary struct {
	Start   int    `json:"start_offset"`
	End     int    `json:"end_offset"`
	Heading string `json:"heading"`
}

// IsHeader reports whether line opens a new scene.
func IsHeader(line string) bool {
	for _, p := range headerPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// Detect splits text at every header line. Each scene runs from its header to
// the next one, the last to the end of the text. Text before the first
// header belongs to no scene. It returns nil when no header is found.
func Detect(text string) []Boundary {
	total := len([]rune(text))
	var out []Boundary
	pos := 0
	for _, line := range strings.Split(text, "\n") {
		if IsHeader(line) {
			if n := len(out); n > 0 {
				out[n-1].End = pos
			}
			out = append(out, Boundary{Start: pos, End: total, Heading: strings.TrimSpace(line)})
		}
		pos += len([]rune(line)) + 1
	}
	return out
}
