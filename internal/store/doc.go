// Package store is the durable key-value layer backing every repository.
//
// Records are JSON payloads kept in named partitions of a single SQLite
// database. The workspace partition additionally maintains a workspace_id
// column extracted from each payload at write time, giving repositories a
// secondary index without the store understanding record shapes. Records
// written before the field existed carry NULL there and are reachable only
// through GetAll or a nil-valued GetByWorkspace until the migration runner
// rewrites them.
//
// A flock on the data directory enforces single-process access. Failure to
// open the database or acquire the lock surfaces as ErrUnavailable; a
// missing record is never an error.
//
// Treat this package as the single source of truth for persistence
// semantics; repositories own their partitions exclusively and never touch
// another repository's keys.
package store
