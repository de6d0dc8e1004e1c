package scene

import "errors"

var (
	// ErrInvalidRange indicates start/end offsets that are inverted, empty, or
	// outside the document.
	ErrInvalidRange = errors.New("invalid scene range")

	// ErrOverlap indicates a new scene collides with an existing one under the
	// reject or clip overlap policies.
	ErrOverlap = errors.New("scene overlaps an existing scene")

	// ErrNotFound indicates no scene with the given ID exists in the set.
	ErrNotFound = errors.New("scene not found")

	// ErrDuplicateID indicates a scene with the same ID is already present.
	ErrDuplicateID = errors.New("duplicate scene id")
)
