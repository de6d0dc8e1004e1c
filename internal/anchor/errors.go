package anchor

import "errors"

var (
	// ErrUnrecoverableSpan marks a scene whose stored offsets are inverted or
	// start past the end of the document. The scene is frozen for the pass.
	ErrUnrecoverableSpan = errors.New("scene offsets out of bounds")

	// ErrAnchorNotFound marks a scene whose start or end pattern could not be
	// located in the new text.
	ErrAnchorNotFound = errors.New("scene anchor not found")

	// ErrDegenerateInput marks a scene whose text is blank or too short to
	// fingerprint reliably.
	ErrDegenerateInput = errors.New("scene text too short to fingerprint")
)
