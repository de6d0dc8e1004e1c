package decoration

import (
	"strings"

	"scenetrack/internal/scene"
)

// Kind is the visual attribute a decoration carries.
type Kind string

const (
	KindHighlight Kind = "highlight"
	KindBold      Kind = "bold"
	KindItalic    Kind = "italic"
	KindAlignment Kind = "alignment"
	KindFontSize  Kind = "font_size"
)

// Attribute describes how a decoration renders. Color is set for highlights,
// Value for format marks.
type Attribute struct {
	Kind  Kind   `json:"kind"`
	Color string `json:"color,omitempty"`
	Value string `json:"value,omitempty"`
}

// Decoration is a render-only annotation of a node-local range.
type Decoration struct {
	Start   int       `json:"start"`
	End     int       `json:"end"`
	Attr    Attribute `json:"attr"`
	SceneID string    `json:"scene_id,omitempty"`
}

// Len returns the number of runes the decoration covers.
func (d Decoration) Len() int {
	return d.End - d.Start
}

// Generate returns one decoration list per node. Nodes are joined by a single
// separator rune, which no decoration ever covers. Scene highlights come
// first in start order with enclosing scenes before the scenes they contain,
// so a renderer that paints in order shows the innermost scene on top.
func Generate(nodes []string, scenes []scene.Scene, marks Marks) [][]Decoration {
	sorted := scene.NewSet(scenes...).Sorted()
	out := make([][]Decoration, len(nodes))

	nodeStart := 0
	for i, node := range nodes {
		nodeEnd := nodeStart + len([]rune(node))
		var decos []Decoration
		for _, sc := range sorted {
			start, end := max(sc.Start, nodeStart), min(sc.End, nodeEnd)
			if start >= end {
				continue
			}
			decos = append(decos, Decoration{
				Start:   start - nodeStart,
				End:     end - nodeStart,
				Attr:    Attribute{Kind: KindHighlight, Color: sc.Color},
				SceneID: sc.ID,
			})
		}
		for _, f := range Families {
			decos = appendMarks(decos, f, marks.Family(f), nodeStart, nodeEnd)
		}
		out[i] = decos
		nodeStart = nodeEnd + 1
	}
	return out
}

// GenerateText splits text into newline-separated nodes and calls Generate.
func GenerateText(text string, scenes []scene.Scene, marks Marks) [][]Decoration {
	return Generate(strings.Split(text, "\n"), scenes, marks)
}

func appendMarks(decos []Decoration, f Family, m *MarkMap, nodeStart, nodeEnd int) []Decoration {
	kind := Kind(f)
	for _, run := range m.overlapping(nodeStart, nodeEnd) {
		for off := max(run.Start, nodeStart); off < min(run.End, nodeEnd); off++ {
			attr := Attribute{Kind: kind, Value: run.Value}
			decos = append(decos, Decoration{
				Start: off - nodeStart,
				End:   off - nodeStart + 1,
				Attr:  attr,
			})
		}
	}
	return decos
}
