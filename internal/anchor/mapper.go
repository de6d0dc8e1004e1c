package anchor

import (
	"slices"
	"sort"
	"unicode"
)

// OffsetMapper holds the whitespace-normalized form of a raw text together
// with the position of every normalized rune in the raw text. Whitespace runs
// collapse to a single space that maps to the first rune of the run; leading
// and trailing whitespace is dropped.
type OffsetMapper struct {
	raw   []rune
	norm  []rune
	toRaw []int
}

// NewOffsetMapper normalizes raw in a single pass.
func NewOffsetMapper(raw string) *OffsetMapper {
	runes := []rune(raw)
	m := &OffsetMapper{
		raw:   runes,
		norm:  make([]rune, 0, len(runes)),
		toRaw: make([]int, 0, len(runes)),
	}
	pendingSpace := -1
	for i, r := range runes {
		if unicode.IsSpace(r) {
			if pendingSpace < 0 {
				pendingSpace = i
			}
			continue
		}
		if pendingSpace >= 0 && len(m.norm) > 0 {
			m.norm = append(m.norm, ' ')
			m.toRaw = append(m.toRaw, pendingSpace)
		}
		pendingSpace = -1
		m.norm = append(m.norm, r)
		m.toRaw = append(m.toRaw, i)
	}
	return m
}

// Normalized returns the normalized runes. Callers must not modify them.
func (m *OffsetMapper) Normalized() []rune {
	return m.norm
}

// Len returns the normalized length in runes.
func (m *OffsetMapper) Len() int {
	return len(m.norm)
}

// RawIndex returns the raw offset of normalized position n. Positions at or
// past the end map to the raw end of the last normalized rune.
func (m *OffsetMapper) RawIndex(n int) int {
	if len(m.norm) == 0 {
		return 0
	}
	if n < 0 {
		n = 0
	}
	if n >= len(m.norm) {
		return m.RawEnd(len(m.norm))
	}
	return m.toRaw[n]
}

// RawEnd converts an exclusive normalized end into an exclusive raw end: one
// past the raw position of the last included rune.
func (m *OffsetMapper) RawEnd(n int) int {
	if n <= 0 || len(m.norm) == 0 {
		return m.RawIndex(0)
	}
	if n > len(m.norm) {
		n = len(m.norm)
	}
	return m.toRaw[n-1] + 1
}

// NormalizedIndex returns the first normalized position whose raw offset is
// at or after raw, or Len if there is none.
func (m *OffsetMapper) NormalizedIndex(raw int) int {
	return sort.SearchInts(m.toRaw, raw)
}

// occurrences returns every index at which pattern starts in the normalized
// text, including overlapping matches.
func (m *OffsetMapper) occurrences(pattern []rune) []int {
	if len(pattern) == 0 || len(pattern) > len(m.norm) {
		return nil
	}
	var out []int
	last := len(m.norm) - len(pattern)
	for i := 0; i <= last; i++ {
		if m.norm[i] != pattern[0] {
			continue
		}
		if slices.Equal(m.norm[i:i+len(pattern)], pattern) {
			out = append(out, i)
		}
	}
	return out
}
