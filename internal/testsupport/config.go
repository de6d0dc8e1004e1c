package testsupport

import (
	"path/filepath"
	"testing"

	"scenetrack/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOverlap sets the overlap policy used when scenes are created.
func WithOverlap(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scenes.Overlap = policy
	}
}

// WithAutoSegment toggles heading segmentation at import.
func WithAutoSegment(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scenes.AutoSegment = enabled
	}
}

// WithAnchoringMode selects the re-anchoring mode.
func WithAnchoringMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Anchoring.Mode = mode
	}
}

// WithCommitOnDrift toggles drift commits below the threshold.
func WithCommitOnDrift(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Anchoring.CommitOnDrift = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
