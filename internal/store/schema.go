// schema.go embeds the SQLite schema and provides schema execution helpers.
//
// Schema files live in the sql/ directory and are executed in alphabetical
// order (hence the numeric prefixes like 001_). Each file's schema stays
// self-contained and reviewable, and numbered prefixes keep execution order
// deterministic.

package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

// execEmbedded executes all .sql files from an embedded filesystem in
// alphabetical order. Each .sql file uses IF NOT EXISTS clauses so running
// against an existing database is safe.
func execEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// execSchema executes the embedded core schema files.
func execSchema(db *sql.DB) error {
	return execEmbedded(db, schemas, "sql")
}
