// Package store persists documents, scenes and format marks in SQLite.
//
// The Store owns the database connection, schema initialization and busy
// retries. Offsets committed by a re-anchoring pass are written together with
// the edited text in a single transaction so the two never disagree on disk.
//
// Schema changes bump schemaVersion in schema.go; users delete the database
// to adopt the new schema.
package store
