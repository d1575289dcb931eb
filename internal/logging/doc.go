// Package logging builds the slog loggers used across sortd.
//
// It offers a compact console handler for interactive runs, a JSON handler for
// machine-readable logs, config-driven construction that tees output into the
// log directory, and thin attr helpers so call sites can avoid importing slog
// directly.
package logging
