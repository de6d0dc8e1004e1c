// Package textutil provides the text primitives shared by scene creation and
// re-anchoring.
//
// The primary use cases are:
//   - Collapsing whitespace runs so fuzzy matching ignores layout changes
//   - Creating token fingerprints of scene text for drift comparison
//   - Computing cosine similarity between fingerprints
//
// Tokenization is Unicode aware: screenplay text is routinely Portuguese
// ("MANHÃ", "AÇÃO"), so tokens are split on anything that is not a letter or
// digit and case-folded through golang.org/x/text rather than ASCII lowering.
package textutil
