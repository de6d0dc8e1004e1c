// Package decoration projects scenes and per-character format marks onto
// paragraph-local ranges for rendering.
//
// Generate is pure and recomputes everything on each call. Format marks are
// kept in MarkMap, an ordered interval map that coalesces runs of equal
// values while still applying them one character at a time.
package decoration
