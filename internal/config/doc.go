// Package config loads, normalizes, and validates subfix configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every
// knob the CLI needs so processing defaults, history storage, and batch
// behavior are discovered in one pass.
//
// Always obtain settings through this package so downstream code
// receives sanitized paths and clear validation errors.
package config
