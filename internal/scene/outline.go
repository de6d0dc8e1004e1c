package scene

import "strings"

// OutlineEntry locates one scene in the document margin.
type OutlineEntry struct {
	Number     int    `json:"number"`
	Line       int    `json:"line"`
	TypePrefix string `json:"type_prefix"`
	TimePrefix string `json:"time_prefix"`
	Scene      Scene  `json:"scene"`
}

// Outline numbers the scenes in document order and resolves the 0-based line
// each one starts on.
func (s Set) Outline(text string) []OutlineEntry {
	sorted := s.Sorted()
	if len(sorted) == 0 {
		return nil
	}

	runes := []rune(text)
	entries := make([]OutlineEntry, 0, len(sorted))
	line, pos := 0, 0
	for i, sc := range sorted {
		target := min(max(sc.Start, 0), len(runes))
		for ; pos < target; pos++ {
			if runes[pos] == '\n' {
				line++
			}
		}
		entries = append(entries, OutlineEntry{
			Number:     i + 1,
			Line:       line,
			TypePrefix: typePrefix(sc),
			TimePrefix: timePrefix(sc),
			Scene:      sc,
		})
	}
	return entries
}

func typePrefix(sc Scene) string {
	if sc.Exterior || sc.LocationType == "EXT" || strings.Contains(sc.Description, "EXT") {
		return "EXT"
	}
	return "INT"
}

func timePrefix(sc Scene) string {
	if sc.TimeOfDay != "" {
		if sc.Day {
			return "DIA"
		}
		return "NOITE"
	}
	if strings.Contains(sc.Description, "NOITE") && !strings.Contains(sc.Description, "DIA") {
		return "NOITE"
	}
	return "DIA"
}
