// Package sqlite implements the user database on an embedded SQLite file
// using modernc.org/sqlite.
//
// Every Open returns a handle with its own single connection, so each worker
// talks to the file through exactly one connection. The file runs in WAL
// mode with a busy timeout; statement ordering between workers is left to
// the caller's gate.
package sqlite
