// Package config loads, normalizes, and validates platefix configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PLATEFIX_DATA_DIR. The Config type centralizes every knob the CLI and the
// detection pipeline need, so the database location, detection window, and
// similarity threshold are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
