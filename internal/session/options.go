package session

import (
	"fmt"

	"scenetrack/internal/anchor"
	"scenetrack/internal/config"
	"scenetrack/internal/scene"
)

// EngineOptions converts the anchoring section of cfg into engine options.
func EngineOptions(cfg *config.Config) (anchor.Options, error) {
	mode, err := anchor.ParseMode(cfg.Anchoring.Mode)
	if err != nil {
		return anchor.Options{}, fmt.Errorf("anchoring.mode: %w", err)
	}
	return anchor.Options{
		Mode:            mode,
		MinFingerprint:  cfg.Anchoring.MinFingerprint,
		PatternRatio:    cfg.Anchoring.PatternRatio,
		PatternMax:      cfg.Anchoring.PatternMax,
		CommitThreshold: cfg.Anchoring.CommitThreshold,
		CommitOnDrift:   cfg.Anchoring.CommitOnDrift,
	}, nil
}

func createOptions(cfg *config.Config) scene.CreateOptions {
	return scene.CreateOptions{HashLength: cfg.Scenes.HashLength}
}
