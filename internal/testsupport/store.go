package testsupport

import (
	"context"
	"testing"

	"scenetrack/internal/config"
	"scenetrack/internal/scene"
	"scenetrack/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewDocument stores a document with the given scenes for tests.
func NewDocument(t testing.TB, st *store.Store, title, text string, scenes ...scene.Scene) *store.Document {
	t.Helper()

	doc, err := st.CreateDocument(context.Background(), title, text, scenes)
	if err != nil {
		t.Fatalf("store.CreateDocument: %v", err)
	}
	return doc
}
