// Package fsys isolates the filesystem operations sortd performs so the
// organizer and the undo path can be tested against fakes.
package fsys
