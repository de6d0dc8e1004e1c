package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint("casa de praia"), 0},
		{"b nil", NewFingerprint("casa de praia"), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	text := "JOÃO entra na sala e olha para a janela"
	got := CosineSimilarity(NewFingerprint(text), NewFingerprint(text))
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityDisjoint(t *testing.T) {
	a := NewFingerprint("apple banana cherry")
	b := NewFingerprint("dog elephant frog")

	if got := CosineSimilarity(a, b); got != 0 {
		t.Errorf("CosineSimilarity(different) = %v, want 0", got)
	}
}

func TestCosineSimilarityPartialOverlap(t *testing.T) {
	a := NewFingerprint("the quick brown fox")
	b := NewFingerprint("the slow brown cat")

	got := CosineSimilarity(a, b)
	if got <= 0 || got >= 1 {
		t.Errorf("CosineSimilarity(partial) = %v, want between 0 and 1", got)
	}
	if back := CosineSimilarity(b, a); back != got {
		t.Errorf("CosineSimilarity not symmetric: (%v, %v)", got, back)
	}
}

func TestNewFingerprintNormCalculation(t *testing.T) {
	// "hello hello world" -> hello:2, world:1, norm = sqrt(5)
	fp := NewFingerprint("hello hello world")
	if fp == nil {
		t.Fatal("expected fingerprint")
	}
	if math.Abs(fp.norm-math.Sqrt(5)) > 0.0001 {
		t.Errorf("norm = %v, want %v", fp.norm, math.Sqrt(5))
	}
	if fp.TokenCount() != 2 {
		t.Errorf("TokenCount() = %d, want 2", fp.TokenCount())
	}
}

func TestNewFingerprintEmpty(t *testing.T) {
	if fp := NewFingerprint(""); fp != nil {
		t.Error("expected nil for empty text")
	}
	if fp := NewFingerprint("a o de em"); fp != nil {
		t.Error("expected nil for text with only short tokens")
	}
	var nilFP *Fingerprint
	if nilFP.TokenCount() != 0 {
		t.Error("expected zero token count for nil fingerprint")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple words", "Hello World", []string{"hello", "world"}},
		{"filters short", "a to the quick fox", []string{"the", "quick", "fox"}},
		{"punctuation", "Hello, World! How are you?", []string{"hello", "world", "how", "are", "you"}},
		{"accented", "EXT. PRAÇA - MANHÃ", []string{"ext", "praça", "manhã"}},
		{"digits", "CENA 12 take123", []string{"cena", "take123"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize() = %v (len %d), want %v (len %d)", got, len(got), tt.want, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTextSimilarity(t *testing.T) {
	if got := TextSimilarity("  ", "\n"); got != 1 {
		t.Errorf("TextSimilarity(blank, blank) = %v, want 1", got)
	}
	if got := TextSimilarity("a b", "c d"); got != 0 {
		t.Errorf("TextSimilarity(untokenizable, different) = %v, want 0", got)
	}
	if got := TextSimilarity("Maria abre a porta", "maria  ABRE a\nporta"); math.Abs(got-1) > 1e-9 {
		t.Errorf("TextSimilarity(reflowed) = %v, want 1", got)
	}
}
