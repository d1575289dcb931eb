package ledger

import "errors"

// Fatal ledger errors. Both mean the process cannot safely continue: a
// duplicate batch id violates the write-once sequencing invariant, and a
// corrupt ledger cannot be trusted to drive undo.
var (
	ErrDuplicateBatchID = errors.New("duplicate batch id")
	ErrLedgerCorrupt    = errors.New("ledger corrupt")
)
