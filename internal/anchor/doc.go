// Package anchor keeps scene offsets registered to their content while the
// document is freely edited.
//
// The Engine fingerprints each scene's text, looks for the same start and end
// patterns in a whitespace-normalized copy of the new document, and projects
// the match back to raw rune offsets through an OffsetMapper. Every failure is
// local to one scene: the pass never errors and the scene keeps its previous
// offsets, with the reason recorded on its Outcome.
package anchor
