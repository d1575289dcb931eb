// Package main hosts the sortd CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into organize
// runs, ledger reversals, history queries, health checks, and configuration
// scaffolding. It centralizes configuration resolution, lock acquisition, and
// structured logging setup so subcommands can focus on user experience.
//
// Keep this package lean: new behaviour belongs in the internal packages
// first, surfaced here through dedicated commands or flags.
package main
