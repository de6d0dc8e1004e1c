package sceneutil

import (
	"math"
	"testing"
)

func TestColorIsDeterministic(t *testing.T) {
	if Color(7) != Color(7) {
		t.Fatal("expected identical colours for identical index")
	}
	c := Color(1)
	if c.Hue != 137.508 || c.Saturation != 70 || c.Lightness != 80 {
		t.Fatalf("unexpected colour for index 1: %+v", c)
	}
	if got := Color(0).String(); got != "hsl(0, 70%, 80%)" {
		t.Fatalf("Color(0).String() = %q", got)
	}
	if got := Color(3).String(); got != "hsl(52.524, 70%, 80%)" {
		t.Fatalf("Color(3).String() = %q", got)
	}
}

func TestColorHuesAreDistinct(t *testing.T) {
	const epsilon = 1.0
	for i := 0; i < 50; i++ {
		for j := i + 1; j < 50; j++ {
			d := math.Abs(Color(i).Hue - Color(j).Hue)
			d = math.Min(d, 360-d)
			if d <= epsilon {
				t.Fatalf("hues %d and %d too close: %.3f vs %.3f", i, j, Color(i).Hue, Color(j).Hue)
			}
		}
	}
}

func TestColorNegativeIndexStaysInRange(t *testing.T) {
	h := Color(-3).Hue
	if h < 0 || h >= 360 {
		t.Fatalf("hue out of range: %v", h)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace", " \n\t", 0},
		{"one word", "Corta!", 0},
		{"two words", "Ele sai.", 1},
		{"ten words", "um dois três quatro cinco seis sete oito nove dez", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.text); got != tt.want {
				t.Errorf("Duration(%q) = %d, want %d", tt.text, got, tt.want)
			}
			if again := Duration(tt.text); again != Duration(tt.text) {
				t.Errorf("Duration not deterministic")
			}
		})
	}
}

func TestContentHash(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		length int
		want   string
	}{
		{"empty", "", 20, ""},
		{"short", "abc", 20, "17862"},
		{"negative", "Hello World", 20, "-3369657c"},
		{"sampled", "INT. HOUSE - DAY\nJohn walks in.", 20, "-3711591f"},
		{"non ascii", "MANHÃ", 20, "45bcc35"},
		{"default length", "abc", 0, "17862"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentHash(tt.text, tt.length); got != tt.want {
				t.Errorf("ContentHash(%q, %d) = %q, want %q", tt.text, tt.length, got, tt.want)
			}
		})
	}
}

func TestContentHashOnlySamplesPrefix(t *testing.T) {
	a := ContentHash("INT. HOUSE - DAY\nJohn walks in.", 20)
	b := ContentHash("INT. HOUSE - DAY\nJohnny runs out the back door.", 20)
	if a != b {
		t.Fatalf("expected identical hashes for identical 20-rune prefixes, got %q and %q", a, b)
	}
}
