package ledger

import (
	"time"
)

// Status represents the outcome of one move attempt.
type Status string

const (
	StatusMoved     Status = "moved"
	StatusSimulated Status = "simulated"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

var statusSet = map[Status]struct{}{
	StatusMoved:     {},
	StatusSimulated: {},
	StatusSkipped:   {},
	StatusFailed:    {},
}

// ValidStatus reports whether a status string is a known record status.
func ValidStatus(status Status) bool {
	_, ok := statusSet[status]
	return ok
}

// Failure reasons recorded on FileRecord.FailureReason and in undo reports.
const (
	ReasonSourceVanished  = "SourceVanished"
	ReasonMoveDenied      = "MoveDenied"
	ReasonCrossDeviceMove = "CrossDeviceMove"
	ReasonUndoCollision   = "UndoCollision"
)

// FileRecord is one completed or simulated move.
type FileRecord struct {
	ID              int64
	BatchID         int64
	Seq             int
	SourcePath      string
	DestinationPath string
	Category        string
	Status          Status
	FailureReason   string
	MovedAt         time.Time
	Reversed        bool
}

// MoveBatch is the ordered set of move attempts produced by one organizer
// invocation. Once appended it is immutable except for the reversed marker.
type MoveBatch struct {
	ID         int64
	RunID      string
	CreatedAt  time.Time
	DryRun     bool
	Reversed   bool
	ReversedAt time.Time
	Records    []FileRecord
}

// CountByStatus tallies the batch's records per status.
func (b *MoveBatch) CountByStatus() map[Status]int {
	counts := make(map[Status]int, len(statusSet))
	for _, record := range b.Records {
		counts[record.Status]++
	}
	return counts
}

// CategorySummary tallies successfully placed (moved or simulated) records
// per category, matching the per-category counts the CLI reports.
func (b *MoveBatch) CategorySummary() map[string]int {
	counts := make(map[string]int)
	for _, record := range b.Records {
		if record.Status == StatusMoved || record.Status == StatusSimulated {
			counts[record.Category]++
		}
	}
	return counts
}

// UndoReport describes the outcome of an UndoLast call.
type UndoReport struct {
	Batches []BatchUndo
}

// BatchUndo describes the reversal of one batch.
type BatchUndo struct {
	BatchID       int64
	Restored      int
	Trivial       int
	Collisions    []UndoFailure
	FullyReversed bool
}

// UndoFailure is one record whose reversal could not be performed.
type UndoFailure struct {
	Seq             int
	SourcePath      string
	DestinationPath string
	Reason          string
	Detail          string
}

// RestoredTotal sums the physically moved-back records across all batches.
func (r *UndoReport) RestoredTotal() int {
	total := 0
	for _, batch := range r.Batches {
		total += batch.Restored
	}
	return total
}

// CollisionTotal sums the per-record reversal failures across all batches.
func (r *UndoReport) CollisionTotal() int {
	total := 0
	for _, batch := range r.Batches {
		total += len(batch.Collisions)
	}
	return total
}
