package store

import "errors"

var (
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")

	// ErrNotFound indicates the requested document or scene does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous indicates an ID prefix matched more than one document.
	ErrAmbiguous = errors.New("ambiguous document id")
)
