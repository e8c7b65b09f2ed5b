// Package log provides centralised audit logging for papertrack operations.
// Logs are stored in ~/.papertrack/log/papertrack-log.db and track CLI
// commands across repositories.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("paper:import", "import").
//		Author(cmd.Author()).
//		File(path).
//		Count(res.Imported).
//		Write(err)
//
//	log.Event("paper:validate", "validate").
//		File(path).
//		Detail("invalid", invalid).
//		Write(err)
//
// The source parameter follows the format "{area}:{command}", for example
// "paper:import", "paper:validate", "repo:init".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g. "paper:import", "repo:init"
	Author string // who performed the action
	Action string // verb: import, export, validate, migrate, etc.
	File   string // input: update file or path the command targeted
	Paper  string // paper uid, for single-record operations

	// Count is the number of records the operation touched.
	Count int

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated, as "{area}:{command}"
// (e.g. "paper:import", "repo:init"). The action describes what was performed
// ("import", "export", "validate", "migrate", "list", ...).
//
// Example:
//
//	log.Event("paper:import", "import").
//		Author(cmd.Author()).
//		File(path).
//		Write(err)
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// File sets the file or path the operation targeted.
func (b *Builder) File(path string) *Builder {
	b.entry.File = path
	return b
}

// Paper sets the paper uid for single-record operations.
func (b *Builder) Paper(uid string) *Builder {
	b.entry.Paper = uid
	return b
}

// Count sets the number of records the operation touched.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// categories, invalid counts, destination paths, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetRepo sets the repository identifier for subsequent log entries.
// The dir should be the absolute path to the .papertrack directory.
func SetRepo(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.repo = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
