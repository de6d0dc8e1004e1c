package decoration

import (
	"strings"
	"testing"

	"scenetrack/internal/scene"
)

func TestGenerateClipsScenesToNodes(t *testing.T) {
	// nodes: "abcd" [0,4) sep 4, "efgh" [5,9) sep 9, "ij" [10,12)
	nodes := []string{"abcd", "efgh", "ij"}
	scenes := []scene.Scene{{ID: "s", Start: 2, End: 11, Color: "hsl(0, 70%, 80%)"}}

	got := Generate(nodes, scenes, Marks{})
	want := [][2]int{{2, 4}, {0, 4}, {0, 1}}
	for i, w := range want {
		if len(got[i]) != 1 {
			t.Fatalf("node %d decorations = %+v", i, got[i])
		}
		d := got[i][0]
		if d.Start != w[0] || d.End != w[1] || d.SceneID != "s" || d.Attr.Kind != KindHighlight || d.Attr.Color == "" {
			t.Fatalf("node %d decoration = %+v, want [%d,%d)", i, d, w[0], w[1])
		}
	}
}

func TestGenerateSkipsInvalidAndOutOfRangeScenes(t *testing.T) {
	scenes := []scene.Scene{
		{ID: "inverted", Start: 3, End: 1},
		{ID: "past", Start: 50, End: 60},
	}
	for i, decos := range GenerateText("hello\nworld", scenes, Marks{}) {
		if len(decos) != 0 {
			t.Fatalf("node %d decorations = %+v", i, decos)
		}
	}
}

func TestGenerateCoverageForDisjointScenes(t *testing.T) {
	text := "INT. CASA - DIA\nJoão entra.\n\nEXT. RUA - NOITE\nChove muito."
	runes := []rune(text)
	scenes := []scene.Scene{
		{ID: "a", Start: 0, End: 15},
		{ID: "b", Start: 16, End: 27},
		{ID: "c", Start: 29, End: 60},
	}

	wantTotal := 0
	for _, sc := range scenes {
		start, end := max(sc.Start, 0), min(sc.End, len(runes))
		for i := start; i < end; i++ {
			if runes[i] != '\n' {
				wantTotal++
			}
		}
	}

	total := 0
	for _, decos := range GenerateText(text, scenes, Marks{}) {
		for _, d := range decos {
			total += d.Len()
		}
	}
	if total != wantTotal {
		t.Fatalf("covered %d runes, want %d", total, wantTotal)
	}
}

func TestGenerateSingleNodeCoverageEqualsSpanLengths(t *testing.T) {
	text := strings.Repeat("x", 40)
	scenes := []scene.Scene{{ID: "a", Start: 0, End: 10}, {ID: "b", Start: 12, End: 30}, {ID: "c", Start: 35, End: 99}}
	total := 0
	for _, d := range Generate([]string{text}, scenes, Marks{})[0] {
		total += d.Len()
	}
	if total != 10+18+5 {
		t.Fatalf("covered %d runes, want 33", total)
	}
}

func TestGenerateOrdersNestedScenesOuterFirst(t *testing.T) {
	scenes := []scene.Scene{
		{ID: "inner", Start: 2, End: 4},
		{ID: "outer", Start: 0, End: 10},
	}
	decos := Generate([]string{"0123456789"}, scenes, Marks{})[0]
	if len(decos) != 2 || decos[0].SceneID != "outer" || decos[1].SceneID != "inner" {
		t.Fatalf("decorations = %+v", decos)
	}
}

func TestGenerateMarksAreNodeLocal(t *testing.T) {
	var marks Marks
	if err := marks.Apply(FamilyBold, 3, 7, "true"); err != nil {
		t.Fatal(err)
	}
	if err := marks.Apply(FamilyAlignment, 6, 7, "center"); err != nil {
		t.Fatal(err)
	}

	// "abcd" [0,4) sep 4, "efgh" [5,9): offset 4 is the separator.
	got := Generate([]string{"abcd", "efgh"}, nil, marks)
	if len(got[0]) != 1 || got[0][0].Start != 3 || got[0][0].End != 4 || got[0][0].Attr.Kind != KindBold {
		t.Fatalf("node 0 = %+v", got[0])
	}
	var bold, align []int
	for _, d := range got[1] {
		if d.End-d.Start != 1 {
			t.Fatalf("mark decoration spans %d runes", d.End-d.Start)
		}
		switch d.Attr.Kind {
		case KindBold:
			bold = append(bold, d.Start)
		case KindAlignment:
			if d.Attr.Value != "center" {
				t.Fatalf("alignment value = %q", d.Attr.Value)
			}
			align = append(align, d.Start)
		}
	}
	if len(bold) != 2 || bold[0] != 0 || bold[1] != 1 {
		t.Fatalf("bold offsets = %v, want [0 1]", bold)
	}
	if len(align) != 1 || align[0] != 1 {
		t.Fatalf("alignment offsets = %v, want [1]", align)
	}
}

func TestGenerateCountsRunes(t *testing.T) {
	scenes := []scene.Scene{{ID: "s", Start: 5, End: 9}}
	got := GenerateText("ação\nfim!", scenes, Marks{})
	if len(got[0]) != 0 {
		t.Fatalf("node 0 = %+v", got[0])
	}
	if d := got[1][0]; d.Start != 0 || d.End != 4 {
		t.Fatalf("node 1 = %+v", d)
	}
}
