package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeAnchoring()
	c.normalizeScenes()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" || c.Paths.DataDir == defaultDataDir {
		if value, ok := os.LookupEnv(dataDirEnv); ok && strings.TrimSpace(value) != "" {
			c.Paths.DataDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "text", "pretty":
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch level {
	case "":
		level = defaultLogLevel
	case "warning":
		level = "warn"
	}
	c.Logging.Level = level
}

func (c *Config) normalizeAnchoring() {
	c.Anchoring.Mode = strings.ToLower(strings.TrimSpace(c.Anchoring.Mode))
	if c.Anchoring.Mode == "" {
		c.Anchoring.Mode = defaultAnchoringMode
	}
	if c.Anchoring.MinFingerprint == 0 {
		c.Anchoring.MinFingerprint = defaultMinFingerprint
	}
	if c.Anchoring.PatternRatio == 0 {
		c.Anchoring.PatternRatio = defaultPatternRatio
	}
	if c.Anchoring.PatternMax == 0 {
		c.Anchoring.PatternMax = defaultPatternMax
	}
}

func (c *Config) normalizeScenes() {
	c.Scenes.Overlap = strings.ToLower(strings.TrimSpace(c.Scenes.Overlap))
	if c.Scenes.Overlap == "" {
		c.Scenes.Overlap = defaultOverlapPolicy
	}
	if c.Scenes.HashLength == 0 {
		c.Scenes.HashLength = defaultHashLength
	}
	c.Scenes.FallbackLabel = strings.TrimSpace(c.Scenes.FallbackLabel)
	if c.Scenes.FallbackLabel == "" {
		c.Scenes.FallbackLabel = defaultFallbackLabel
	}
}
