// Package config loads, normalizes, and validates sortd configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and normalizes category rules so lookups can
// assume lower-cased, dot-free extensions and title-cased folder labels. The
// Config type centralizes every knob the CLI needs, and derives the ledger and
// lock file locations from the log directory.
package config
