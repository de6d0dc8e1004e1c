package textutil

// CosineSimilarity compares two fingerprints and returns a value in [0, 1].
// A nil or empty fingerprint is similar to nothing.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	small, large := a, b
	if len(large.tokens) < len(small.tokens) {
		small, large = large, small
	}
	var dot float64
	for token, weight := range small.tokens {
		dot += weight * large.tokens[token]
	}
	return min(max(dot/(a.norm*b.norm), 0), 1)
}

// TextSimilarity fingerprints both texts and compares them. Two texts without
// any usable token are considered identical when their normalized forms match.
func TextSimilarity(a, b string) float64 {
	fa, fb := NewFingerprint(a), NewFingerprint(b)
	if fa == nil && fb == nil {
		if Normalize(a) == Normalize(b) {
			return 1
		}
		return 0
	}
	return CosineSimilarity(fa, fb)
}
