package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateAnchoring(); err != nil {
		return err
	}
	if err := c.validateScenes(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateAnchoring() error {
	switch c.Anchoring.Mode {
	case "mapped", "legacy":
	default:
		return fmt.Errorf("anchoring.mode: unsupported value %q (want mapped or legacy)", c.Anchoring.Mode)
	}
	if err := ensurePositiveMap(map[string]int{
		"anchoring.min_fingerprint": c.Anchoring.MinFingerprint,
		"anchoring.pattern_max":     c.Anchoring.PatternMax,
	}); err != nil {
		return err
	}
	if c.Anchoring.PatternRatio <= 0 || c.Anchoring.PatternRatio > 1 {
		return errors.New("anchoring.pattern_ratio must be in (0, 1]")
	}
	if c.Anchoring.CommitThreshold < 0 {
		return errors.New("anchoring.commit_threshold must not be negative")
	}
	return nil
}

func (c *Config) validateScenes() error {
	switch c.Scenes.Overlap {
	case "allow", "reject", "clip":
	default:
		return fmt.Errorf("scenes.overlap: unsupported value %q (want allow, reject or clip)", c.Scenes.Overlap)
	}
	if c.Scenes.HashLength <= 0 {
		return errors.New("scenes.hash_length must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
