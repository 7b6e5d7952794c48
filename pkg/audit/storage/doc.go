// Package storage provides audit record backends.
//
// SQLiteStorage persists records in a single SQLite file. Two drivers are
// supported and selected by name:
//   - "sqlite": modernc.org/sqlite, pure Go, the default
//   - "sqlite3": github.com/mattn/go-sqlite3, requires cgo
//
// MemoryStorage keeps records in a map and is intended for tests.
package storage
