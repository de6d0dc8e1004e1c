package scene

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"scenetrack/internal/heading"
	"scenetrack/internal/sceneutil"
)

// WholeDocumentLabel is the default description of the import fallback scene.
const WholeDocumentLabel = "Full Document"

// Scene is a labelled span of the document.
type Scene struct {
	ID              string `json:"id"`
	Start           int    `json:"start_offset"`
	End             int    `json:"end_offset"`
	Color           string `json:"color"`
	ContentHash     string `json:"content_hash,omitempty"`
	Description     string `json:"description"`
	LocationType    string `json:"location_type"`
	TimeOfDay       string `json:"time_of_day,omitempty"`
	LocationName    string `json:"location_name,omitempty"`
	Exterior        bool   `json:"exterior"`
	Day             bool   `json:"day"`
	DurationSeconds int    `json:"duration_seconds"`
	Notes           string `json:"notes,omitempty"`
}

// Valid reports whether the scene satisfies Start < End.
func (s Scene) Valid() bool {
	return s.Start < s.End
}

// Len returns the number of runes the scene covers.
func (s Scene) Len() int {
	if !s.Valid() {
		return 0
	}
	return s.End - s.Start
}

// Overlaps reports whether the two scenes share at least one rune.
func (s Scene) Overlaps(other Scene) bool {
	return s.Start < other.End && other.Start < s.End
}

// Labels holds the user-editable fields of a scene. Nil fields are left
// untouched by Set.Update.
type Labels struct {
	Description  *string
	LocationType *string
	TimeOfDay    *string
	LocationName *string
	Notes        *string
}

// CreateOptions tunes scene creation.
type CreateOptions struct {
	// HashLength is the number of leading runes fed to the content hash.
	HashLength int
}

// NewFromSelection builds a scene over text[start:end]. index is the creation
// index used for the highlight colour, normally the current scene count.
func NewFromSelection(text string, start, end, index int, opts CreateOptions) (Scene, error) {
	runes := []rune(text)
	if start < 0 || end > len(runes) || start >= end {
		return Scene{}, fmt.Errorf("%w: [%d, %d) in document of %d runes", ErrInvalidRange, start, end, len(runes))
	}
	body := string(runes[start:end])
	if strings.TrimSpace(body) == "" {
		return Scene{}, fmt.Errorf("%w: selection [%d, %d) is blank", ErrInvalidRange, start, end)
	}

	h := heading.Synthesize(body)
	return Scene{
		ID:              uuid.NewString(),
		Start:           start,
		End:             end,
		Color:           sceneutil.Color(index).String(),
		ContentHash:     sceneutil.ContentHash(body, opts.HashLength),
		Description:     h.Description,
		LocationType:    h.LocationType,
		TimeOfDay:       h.TimeOfDay,
		LocationName:    h.LocationName,
		Exterior:        h.Exterior,
		Day:             h.Day,
		DurationSeconds: sceneutil.Duration(body),
	}, nil
}

// NewWholeDocument builds the single fallback scene created at import when
// automatic segmentation is disabled or finds nothing.
func NewWholeDocument(text, label string, opts CreateOptions) Scene {
	if strings.TrimSpace(label) == "" {
		label = WholeDocumentLabel
	}
	return Scene{
		ID:              uuid.NewString(),
		Start:           0,
		End:             len([]rune(text)),
		Color:           sceneutil.Color(0).String(),
		ContentHash:     sceneutil.ContentHash(text, opts.HashLength),
		Description:     label,
		LocationType:    heading.Interior,
		Day:             true,
		DurationSeconds: sceneutil.Duration(text),
	}
}
