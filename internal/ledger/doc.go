// Package ledger persists move batches in SQLite and drives their reversal.
//
// The Store is append-only: a batch is written once, in one committed
// transaction, and afterwards only its reversed marker may change. UndoLast
// replays moved records backwards, recreating missing parent directories and
// skipping records whose original path is now occupied. Per-record reversal
// state is persisted so a partially reversed batch can be retried.
//
// There is no transaction spanning the filesystem and the ledger: a crash
// between a physical move and the batch append can leave an unrecorded move.
// That gap is accepted; the ledger guarantees only that what it records is
// durable.
package ledger
