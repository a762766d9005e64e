// Package database stores the sweep history in SQLite.
//
// Every confirmed clean is recorded as a sweep row (roots, counts) plus one
// removal row per file with its outcome. The history is an audit trail
// only; scans never read it.
//
// The database lives at $XDG_DATA_HOME/sweeper/sweeper.db and is opened
// through modernc.org/sqlite, so no C toolchain is required.
package database
