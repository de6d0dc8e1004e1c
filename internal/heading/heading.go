// Package heading derives a structured scene heading ("slugline") from the
// raw text a scene was created over.
//
// Two conventions are recognised on the first line: the Brazilian order used
// by the production team ("INT. - DIA - COZINHA") and the English order
// ("INT. KITCHEN - DAY"). Anything else falls back to a truncated copy of the
// line. Headings are computed once, when the scene is created; re-anchoring
// never recomputes them.
package heading

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"scenetrack/internal/textutil"
)

// FallbackLimit is the number of runes kept from an unrecognised first line.
const FallbackLimit = 30

const ellipsis = "..."

// Location types stored on a scene.
const (
	Interior = "INT"
	Exterior = "EXT"
)

var (
	// Brazilian order: INT/EXT marker, time of day, then location.
	timeFirstPattern = regexp.MustCompile(`(?i)^\s*(INT/EXT|INTERNA|EXTERNA|INT|EXT)\.?\s*[-—–.]?\s*(DIA|NOITE|TARDE|MANHÃ|AMANHECER|ANOITECER)\.?\s*[-—–.]?\s*(.+?)$`)

	// English order: marker, location, separator, time of day.
	locationFirstPattern = regexp.MustCompile(`(?i)^\s*(INT\.?/EXT|I/E|INTERNA|EXTERNA|INT|EXT)\.?\s*[-—–.]?\s*(.+?)\s*[-—–.]\s*(DIA|NOITE|TARDE|MANHÃ|AMANHECER|ANOITECER|DAY|NIGHT|MORNING|AFTERNOON|EVENING|DAWN|DUSK)\.?$`)

	upper = cases.Upper(language.BrazilianPortuguese)
)

var dayTimes = map[string]bool{
	"DIA":       true,
	"MANHÃ":     true,
	"TARDE":     true,
	"DAY":       true,
	"MORNING":   true,
	"AFTERNOON": true,
}

// Heading is the label synthesized for a new scene.
type Heading struct {
	Description  string
	LocationType string
	TimeOfDay    string
	LocationName string
	Exterior     bool
	Day          bool
	// Matched is false when Description is the truncated fallback.
	Matched bool
}

// Synthesize builds a heading from the first line of text.
func Synthesize(text string) Heading {
	line := strings.TrimSpace(norm.NFC.String(textutil.FirstLine(text)))

	if m := timeFirstPattern.FindStringSubmatch(line); m != nil {
		return build(m[1], m[2], m[3])
	}
	if m := locationFirstPattern.FindStringSubmatch(line); m != nil {
		return build(m[1], m[3], m[2])
	}

	return Heading{
		Description:  textutil.Truncate(line, FallbackLimit, ellipsis),
		LocationType: Interior,
		Day:          true,
	}
}

func build(marker, timeOfDay, location string) Heading {
	prefix := canonicalMarker(upper.String(marker))
	tod := upper.String(timeOfDay)
	location = strings.TrimSpace(location)

	h := Heading{
		TimeOfDay:    tod,
		LocationName: location,
		Exterior:     strings.Contains(prefix, Exterior),
		Day:          dayTimes[tod],
		Matched:      true,
	}
	h.LocationType = Interior
	if h.Exterior {
		h.LocationType = Exterior
	}
	h.Description = prefix + " - " + tod + " - " + location
	return h
}

func canonicalMarker(marker string) string {
	switch marker {
	case "INTERNA":
		return Interior
	case "EXTERNA":
		return Exterior
	case "I/E", "INT./EXT", "INT/EXT":
		return "INT/EXT"
	default:
		return marker
	}
}
