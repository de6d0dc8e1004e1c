// Package scene defines the scene span model and the value-semantic Set that
// a session owns.
//
// A Scene is a labelled, coloured range of the script. Its offsets are rune
// indices into the document text with an exclusive end; a scene is valid
// while Start < End. Scenes are created from a confirmed selection or, at
// import, from segmentation or a single whole-document fallback. Their
// offsets are rewritten by the re-anchoring engine after every edit and by
// explicit boundary edits; their labels only by explicit user edits.
//
// Set never mutates in place: every operation returns a new Set, so a caller
// holding the previous value (an undo snapshot, a decoration pass in flight)
// keeps a consistent view.
package scene
