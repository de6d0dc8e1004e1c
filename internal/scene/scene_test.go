package scene

import (
	"errors"
	"strings"
	"testing"
)

func TestNewFromSelection(t *testing.T) {
	text := "INT. HOUSE - DAY\nJohn walks in.\n\nEXT. GARDEN - NIGHT\nRain."
	end := len([]rune("INT. HOUSE - DAY\nJohn walks in."))

	sc, err := NewFromSelection(text, 0, end, 0, CreateOptions{HashLength: 20})
	if err != nil {
		t.Fatalf("NewFromSelection: %v", err)
	}
	if sc.Description != "INT - DAY - HOUSE" {
		t.Fatalf("description = %q", sc.Description)
	}
	if sc.LocationType != "INT" || sc.Exterior || !sc.Day {
		t.Fatalf("unexpected heading fields: %+v", sc)
	}
	if sc.ID == "" || sc.Color != "hsl(0, 70%, 80%)" {
		t.Fatalf("unexpected id/color: %q %q", sc.ID, sc.Color)
	}
	if sc.ContentHash == "" {
		t.Fatal("expected content hash")
	}
	if sc.Start != 0 || sc.End != end {
		t.Fatalf("bounds = [%d,%d)", sc.Start, sc.End)
	}
}

func TestNewFromSelectionRejectsBadRanges(t *testing.T) {
	text := "hello   world"
	tests := []struct {
		name       string
		start, end int
	}{
		{"inverted", 5, 2},
		{"empty", 3, 3},
		{"negative", -1, 4},
		{"past end", 0, 99},
		{"blank", 5, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromSelection(text, tt.start, tt.end, 0, CreateOptions{})
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestNewWholeDocument(t *testing.T) {
	text := "Só texto"
	sc := NewWholeDocument(text, "", CreateOptions{HashLength: 20})
	if sc.Start != 0 || sc.End != 8 {
		t.Fatalf("bounds = [%d,%d), want [0,8)", sc.Start, sc.End)
	}
	if sc.Description != WholeDocumentLabel {
		t.Fatalf("description = %q", sc.Description)
	}
}

func mustScene(t *testing.T, id string, start, end int) Scene {
	t.Helper()
	return Scene{ID: id, Start: start, End: end}
}

func TestSetIsValueSemantic(t *testing.T) {
	base := NewSet(mustScene(t, "a", 0, 10))
	next, err := base.Add(mustScene(t, "b", 10, 20))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if base.Len() != 1 || next.Len() != 2 {
		t.Fatalf("lens = %d/%d, want 1/2", base.Len(), next.Len())
	}

	moved := next.ApplyOffsets([]OffsetUpdate{{ID: "a", Start: 5, End: 15}, {ID: "ghost", Start: 1, End: 2}})
	if a, _ := next.Get("a"); a.Start != 0 {
		t.Fatalf("receiver mutated: %+v", a)
	}
	if a, _ := moved.Get("a"); a.Start != 5 || a.End != 15 {
		t.Fatalf("offsets not applied: %+v", a)
	}
	if moved.Len() != 2 {
		t.Fatalf("unknown id changed set size")
	}

	all := moved.All()
	all[0].ID = "changed"
	if _, ok := moved.Get("a"); !ok {
		t.Fatal("All exposed internal storage")
	}
}

func TestSetAddRejectsDuplicatesAndInvalid(t *testing.T) {
	set := NewSet(mustScene(t, "a", 0, 10))
	if _, err := set.Add(mustScene(t, "a", 20, 30)); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if _, err := set.Add(mustScene(t, "b", 30, 30)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSetPlace(t *testing.T) {
	set := NewSet(mustScene(t, "a", 10, 20), mustScene(t, "b", 30, 35))
	tests := []struct {
		name       string
		policy     OverlapPolicy
		start, end int
		wantStart  int
		wantEnd    int
		wantErr    error
	}{
		{"allow keeps overlap", OverlapAllow, 5, 15, 5, 15, nil},
		{"reject overlap", OverlapReject, 5, 15, 0, 0, ErrOverlap},
		{"reject adjacent ok", OverlapReject, 20, 30, 20, 30, nil},
		{"clip tail", OverlapClip, 15, 28, 20, 28, nil},
		{"clip picks longest gap", OverlapClip, 8, 40, 20, 30, nil},
		{"clip head", OverlapClip, 0, 12, 0, 10, nil},
		{"clip fully covered", OverlapClip, 11, 19, 0, 0, ErrOverlap},
		{"inverted", OverlapAllow, 9, 3, 0, 0, ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := set.Place(tt.start, tt.end, tt.policy)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Place: %v", err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("got [%d,%d), want [%d,%d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParseOverlapPolicy(t *testing.T) {
	for input, want := range map[string]OverlapPolicy{"": OverlapAllow, "Reject": OverlapReject, " clip ": OverlapClip} {
		got, err := ParseOverlapPolicy(input)
		if err != nil || got != want {
			t.Fatalf("ParseOverlapPolicy(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseOverlapPolicy("merge"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestSetSorted(t *testing.T) {
	set := NewSet(
		mustScene(t, "inner", 5, 8),
		mustScene(t, "late", 20, 30),
		mustScene(t, "outer", 5, 15),
		mustScene(t, "first", 0, 3),
	)
	var ids []string
	for _, sc := range set.Sorted() {
		ids = append(ids, sc.ID)
	}
	if got := strings.Join(ids, ","); got != "first,outer,inner,late" {
		t.Fatalf("order = %s", got)
	}
}

func TestSetUpdateAndBounds(t *testing.T) {
	set := NewSet(mustScene(t, "a", 0, 10))
	desc, loc := "EXT - NOITE - RUA", "ext"
	updated, err := set.Update("a", Labels{Description: &desc, LocationType: &loc})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := updated.Get("a")
	if got.Description != desc || got.LocationType != "EXT" || !got.Exterior {
		t.Fatalf("labels not applied: %+v", got)
	}
	if _, err := set.Update("missing", Labels{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := set.SetBounds("a", 4, 40, 30); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	moved, err := set.SetBounds("a", 4, 12, 30)
	if err != nil {
		t.Fatalf("SetBounds: %v", err)
	}
	if got, _ := moved.Get("a"); got.Start != 4 || got.End != 12 {
		t.Fatalf("bounds = [%d,%d)", got.Start, got.End)
	}
}

func TestSetRemoveAndClear(t *testing.T) {
	set := NewSet(mustScene(t, "a", 0, 10), mustScene(t, "b", 10, 20))
	removed, err := set.Remove("a")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Len() != 1 || set.Len() != 2 {
		t.Fatalf("lens = %d/%d", removed.Len(), set.Len())
	}
	if _, err := removed.Remove("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if set.Clear().Len() != 0 {
		t.Fatal("Clear left scenes behind")
	}
}

func TestOutline(t *testing.T) {
	text := "INT. CASA - DIA\nfala\n\nEXT. RUA - NOITE\nchuva"
	set := NewSet(
		Scene{ID: "b", Start: 22, End: 44, Description: "EXT - NOITE - RUA", LocationType: "EXT", Exterior: true, TimeOfDay: "NOITE"},
		Scene{ID: "a", Start: 0, End: 20, Description: "INT - DIA - CASA", LocationType: "INT", TimeOfDay: "DIA", Day: true},
	)
	entries := set.Outline(text)
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	first, second := entries[0], entries[1]
	if first.Scene.ID != "a" || first.Number != 1 || first.Line != 0 || first.TypePrefix != "INT" || first.TimePrefix != "DIA" {
		t.Fatalf("first = %+v", first)
	}
	if second.Scene.ID != "b" || second.Number != 2 || second.Line != 3 || second.TypePrefix != "EXT" || second.TimePrefix != "NOITE" {
		t.Fatalf("second = %+v", second)
	}
}
