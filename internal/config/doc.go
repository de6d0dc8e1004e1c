// Package config loads, normalizes, and validates scenetrack configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SCENETRACK_DATA_DIR
// environment fallback. The Config type centralizes the storage location,
// logging, re-anchoring tuning and scene creation policy the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
