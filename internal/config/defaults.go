package config

const (
	defaultConfigPath      = "~/.config/scenetrack/config.toml"
	defaultDataDir         = "~/.local/share/scenetrack"
	defaultLogDir          = "~/.local/share/scenetrack/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultAnchoringMode   = "mapped"
	defaultMinFingerprint  = 10
	defaultPatternRatio    = 0.3
	defaultPatternMax      = 50
	defaultCommitThreshold = 5
	defaultOverlapPolicy   = "allow"
	defaultHashLength      = 20
	defaultFallbackLabel   = "Full Document"

	dataDirEnv = "SCENETRACK_DATA_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Anchoring: Anchoring{
			Mode:            defaultAnchoringMode,
			MinFingerprint:  defaultMinFingerprint,
			PatternRatio:    defaultPatternRatio,
			PatternMax:      defaultPatternMax,
			CommitThreshold: defaultCommitThreshold,
			CommitOnDrift:   true,
		},
		Scenes: Scenes{
			Overlap:       defaultOverlapPolicy,
			AutoSegment:   false,
			HashLength:    defaultHashLength,
			FallbackLabel: defaultFallbackLabel,
		},
	}
}
