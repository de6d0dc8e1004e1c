package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteText writes text to path, creating parent directories as needed.
func WriteText(t testing.TB, path, text string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
