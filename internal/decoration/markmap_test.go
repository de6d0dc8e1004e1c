package decoration

import (
	"errors"
	"reflect"
	"testing"
)

func TestMarkMapSetCoalescesAndSplits(t *testing.T) {
	var m MarkMap
	m.Set(0, 5, "a")
	m.Set(5, 8, "a")
	m.Set(10, 12, "b")
	want := []Interval{{0, 8, "a"}, {10, 12, "b"}}
	if got := m.Runs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("runs = %v, want %v", got, want)
	}

	m.Set(3, 11, "c")
	want = []Interval{{0, 3, "a"}, {3, 11, "c"}, {11, 12, "b"}}
	if got := m.Runs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("runs = %v, want %v", got, want)
	}

	m.Clear(2, 4)
	want = []Interval{{0, 2, "a"}, {4, 11, "c"}, {11, 12, "b"}}
	if got := m.Runs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("runs = %v, want %v", got, want)
	}
	if m.Len() != 10 {
		t.Fatalf("Len = %d, want 10", m.Len())
	}
}

func TestMarkMapAt(t *testing.T) {
	var m MarkMap
	m.Set(4, 6, "x")
	tests := []struct {
		offset int
		value  string
		ok     bool
	}{{3, "", false}, {4, "x", true}, {5, "x", true}, {6, "", false}}
	for _, tt := range tests {
		v, ok := m.At(tt.offset)
		if v != tt.value || ok != tt.ok {
			t.Fatalf("At(%d) = %q, %v", tt.offset, v, ok)
		}
	}
}

func TestMarkMapRunsAscending(t *testing.T) {
	var m MarkMap
	m.Set(7, 9, "b")
	m.Set(1, 3, "a")
	want := []Interval{{1, 3, "a"}, {7, 9, "b"}}
	if got := m.Runs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("runs = %v, want %v", got, want)
	}
	if m.Len() != 4 {
		t.Fatalf("Len = %d, want 4", m.Len())
	}
}

func TestMarkMapCopyIsIndependent(t *testing.T) {
	var m MarkMap
	m.Set(0, 4, "a")
	snapshot := m
	m.Set(1, 2, "b")
	if got := snapshot.Runs(); !reflect.DeepEqual(got, []Interval{{0, 4, "a"}}) {
		t.Fatalf("snapshot changed: %v", got)
	}
}

func TestMarksApply(t *testing.T) {
	var marks Marks
	if err := marks.Apply(FamilyBold, 0, 3, "true"); err != nil {
		t.Fatalf("Apply bold: %v", err)
	}
	if err := marks.Apply(FamilyBold, 1, 2, "false"); err != nil {
		t.Fatalf("Apply bold false: %v", err)
	}
	if got := marks.Bold.Len(); got != 2 {
		t.Fatalf("bold len = %d, want 2", got)
	}
	if err := marks.Apply(FamilyFontSize, 0, 2, "18px"); err != nil {
		t.Fatalf("Apply font size: %v", err)
	}
	if v, _ := marks.FontSize.At(1); v != "18" {
		t.Fatalf("font size = %q", v)
	}

	bad := []struct {
		family     Family
		start, end int
		value      string
	}{
		{FamilyAlignment, 0, 1, "diagonal"},
		{FamilyFontSize, 0, 1, "-3"},
		{FamilyItalic, 0, 1, "maybe"},
		{FamilyBold, 4, 4, "true"},
		{Family("underline"), 0, 1, "true"},
	}
	for _, tt := range bad {
		if err := marks.Apply(tt.family, tt.start, tt.end, tt.value); !errors.Is(err, ErrInvalidMark) {
			t.Fatalf("Apply(%s, %q) = %v, want ErrInvalidMark", tt.family, tt.value, err)
		}
	}
}

func TestParseFamily(t *testing.T) {
	for input, want := range map[string]Family{"Bold": FamilyBold, "font-size": FamilyFontSize, "alignment": FamilyAlignment} {
		got, err := ParseFamily(input)
		if err != nil || got != want {
			t.Fatalf("ParseFamily(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseFamily("strike"); !errors.Is(err, ErrInvalidMark) {
		t.Fatalf("expected ErrInvalidMark, got %v", err)
	}
}
