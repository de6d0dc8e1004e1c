package scene

import (
	"fmt"
	"sort"
	"strings"
)

// OverlapPolicy decides what happens when a new scene collides with
// existing ones.
type OverlapPolicy string

const (
	// OverlapAllow accepts overlapping scenes; decorations paint later
	// (inner) scenes over earlier ones.
	OverlapAllow OverlapPolicy = "allow"
	// OverlapReject refuses a scene that shares any rune with another.
	OverlapReject OverlapPolicy = "reject"
	// OverlapClip shrinks the new scene to its longest uncovered stretch.
	OverlapClip OverlapPolicy = "clip"
)

// ParseOverlapPolicy converts a configuration value to an OverlapPolicy.
func ParseOverlapPolicy(value string) (OverlapPolicy, error) {
	switch p := OverlapPolicy(strings.ToLower(strings.TrimSpace(value))); p {
	case "":
		return OverlapAllow, nil
	case OverlapAllow, OverlapReject, OverlapClip:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported overlap policy %q", value)
	}
}

// OffsetUpdate is a committed re-anchoring result for one scene.
type OffsetUpdate struct {
	ID    string `json:"id"`
	Start int    `json:"start_offset"`
	End   int    `json:"end_offset"`
}

// Set is an immutable collection of scenes in creation order.
type Set struct {
	scenes []Scene
}

// NewSet copies scenes into a new Set.
func NewSet(scenes ...Scene) Set {
	return Set{scenes: append([]Scene(nil), scenes...)}
}

// Len returns the number of scenes.
func (s Set) Len() int {
	return len(s.scenes)
}

// All returns a copy of the scenes in creation order.
func (s Set) All() []Scene {
	return append([]Scene(nil), s.scenes...)
}

// Get returns the scene with the given ID.
func (s Set) Get(id string) (Scene, bool) {
	if i := s.index(id); i >= 0 {
		return s.scenes[i], true
	}
	return Scene{}, false
}

// Sorted returns the scenes ordered by Start, wider scenes first on ties, then
// by ID. A scene nested inside another therefore sorts after it.
func (s Set) Sorted() []Scene {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return a.ID < b.ID
	})
	return out
}

// Place resolves a requested range against the overlap policy and returns the
// range the new scene should cover.
func (s Set) Place(start, end int, policy OverlapPolicy) (int, int, error) {
	if start >= end {
		return 0, 0, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end)
	}
	probe := Scene{Start: start, End: end}
	switch policy {
	case OverlapReject:
		for _, existing := range s.scenes {
			if existing.Valid() && existing.Overlaps(probe) {
				return 0, 0, fmt.Errorf("%w: [%d, %d) collides with %s [%d, %d)",
					ErrOverlap, start, end, existing.ID, existing.Start, existing.End)
			}
		}
		return start, end, nil
	case OverlapClip:
		return s.longestGap(start, end)
	default:
		return start, end, nil
	}
}

// longestGap returns the longest stretch of [start, end) not covered by any
// valid scene. Ties go to the earliest stretch.
func (s Set) longestGap(start, end int) (int, int, error) {
	bestStart, bestEnd := 0, 0
	cursor := start
	for _, existing := range s.Sorted() {
		if !existing.Valid() || existing.End <= cursor {
			continue
		}
		if existing.Start >= end {
			break
		}
		if existing.Start > cursor && existing.Start-cursor > bestEnd-bestStart {
			bestStart, bestEnd = cursor, existing.Start
		}
		if existing.End > cursor {
			cursor = existing.End
		}
		if cursor >= end {
			break
		}
	}
	if cursor < end && end-cursor > bestEnd-bestStart {
		bestStart, bestEnd = cursor, end
	}
	if bestEnd <= bestStart {
		return 0, 0, fmt.Errorf("%w: [%d, %d) is fully covered", ErrOverlap, start, end)
	}
	return bestStart, bestEnd, nil
}

// Add returns a new Set with sc appended.
func (s Set) Add(sc Scene) (Set, error) {
	if !sc.Valid() {
		return s, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, sc.Start, sc.End)
	}
	if s.index(sc.ID) >= 0 {
		return s, fmt.Errorf("%w: %s", ErrDuplicateID, sc.ID)
	}
	return Set{scenes: append(s.All(), sc)}, nil
}

// Update returns a new Set with the non-nil labels applied to scene id.
func (s Set) Update(id string, labels Labels) (Set, error) {
	i := s.index(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	out := s.All()
	sc := &out[i]
	if labels.Description != nil {
		sc.Description = *labels.Description
	}
	if labels.LocationType != nil {
		sc.LocationType = strings.ToUpper(strings.TrimSpace(*labels.LocationType))
		sc.Exterior = strings.Contains(sc.LocationType, "EXT")
	}
	if labels.TimeOfDay != nil {
		sc.TimeOfDay = strings.ToUpper(strings.TrimSpace(*labels.TimeOfDay))
	}
	if labels.LocationName != nil {
		sc.LocationName = *labels.LocationName
	}
	if labels.Notes != nil {
		sc.Notes = *labels.Notes
	}
	return Set{scenes: out}, nil
}

// SetBounds returns a new Set with scene id moved to [start, end). docLen is
// the document length in runes.
func (s Set) SetBounds(id string, start, end, docLen int) (Set, error) {
	i := s.index(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if start < 0 || end > docLen || start >= end {
		return s, fmt.Errorf("%w: [%d, %d) in document of %d runes", ErrInvalidRange, start, end, docLen)
	}
	out := s.All()
	out[i].Start, out[i].End = start, end
	return Set{scenes: out}, nil
}

// Remove returns a new Set without scene id.
func (s Set) Remove(id string) (Set, error) {
	i := s.index(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	out := make([]Scene, 0, len(s.scenes)-1)
	out = append(out, s.scenes[:i]...)
	out = append(out, s.scenes[i+1:]...)
	return Set{scenes: out}, nil
}

// Clear returns an empty Set.
func (s Set) Clear() Set {
	return Set{}
}

// ApplyOffsets returns a new Set with the committed offsets written back.
// Updates for unknown IDs are ignored.
func (s Set) ApplyOffsets(updates []OffsetUpdate) Set {
	if len(updates) == 0 {
		return s
	}
	out := s.All()
	for _, u := range updates {
		if i := s.index(u.ID); i >= 0 && u.Start < u.End {
			out[i].Start, out[i].End = u.Start, u.End
		}
	}
	return Set{scenes: out}
}

func (s Set) index(id string) int {
	for i, sc := range s.scenes {
		if sc.ID == id {
			return i
		}
	}
	return -1
}
