// Package session owns one open document: its text, scene set and format
// marks.
//
// A Session holds an exclusive file lock on its document for its lifetime, so
// two hosts never interleave edits. Every text edit runs in a fixed order:
// re-anchor the scenes against the new text, commit text and offsets to the
// store in one transaction, then swap the in-memory state. Decorations are
// computed on demand from the committed state.
package session
