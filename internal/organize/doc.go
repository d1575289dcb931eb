// Package organize moves files from the watched directory into category
// folders and records each attempt in the undo ledger.
//
// The Resolver guarantees collision-free destinations by probing the
// filesystem and a per-run claimed set, the Executor performs each move at
// most once and classifies its failures, and the Organizer glues both to the
// categorizer and commits one batch per invocation. Dry-run batches follow
// the identical path without touching the filesystem.
package organize
