package session

import "errors"

var (
	// ErrLocked indicates another session holds the document.
	ErrLocked = errors.New("document is locked by another session")

	// ErrClosed indicates the session was already closed.
	ErrClosed = errors.New("session closed")
)
