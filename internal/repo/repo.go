// Package repo provides repository initialisation and discovery for papertrack.
//
// A papertrack repository is a .papertrack directory containing the paper
// database and the tag configuration. This package handles:
//   - Initialising new repositories (creating .papertrack/, the database,
//     and the default tags.yaml)
//   - Discovering existing repositories by walking up the directory tree
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .papertrack directory containing the database
// is found, or the filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qiwen-lab/papertrack/internal/store"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
)

const (
	// Dir is the directory name for the papertrack repository.
	Dir = ".papertrack"
	// DBFile is the database filename.
	DBFile = "papertrack.db"
)

// ErrNotInitialised is returned when no papertrack repository is found.
var ErrNotInitialised = errors.New("papertrack not initialised (run 'papertrack init')")

// DBPath returns the database path inside a repository parent directory.
func DBPath(dir string) string {
	return filepath.Join(dir, Dir, DBFile)
}

// Init initialises a new papertrack repository under dir (current directory
// when empty): the .papertrack directory, an empty database, the default tag
// configuration, and a .gitignore covering transient files.
//
// Following the git model, init does not write user config. Config is a
// separate concern managed via "papertrack config".
func Init(force bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	repoDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(repoDir, DBFile)

	// Check if already exists
	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFile)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(repoDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Write the default tag configuration only on first init so a
	// reinitialise doesn't clobber user customisations.
	tagPath := tagcfg.PathIn(repoDir)
	if _, err := os.Stat(tagPath); os.IsNotExist(err) {
		if err := tagcfg.Default().Save(tagPath); err != nil {
			return fmt.Errorf("write tag configuration: %w", err)
		}
	}

	// Create .gitignore if it doesn't exist. The database is the source of
	// truth and may be committed; WAL companions and local config are not.
	gitignore := filepath.Join(repoDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# papertrack - ignore transient and local files
*.db-wal
*.db-shm
config.yaml
backup/
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	return nil
}

// Discover walks up the directory tree looking for the papertrack database.
// Returns the full path to the database if found.
func Discover() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := DBPath(dir)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DiscoverDir finds the .papertrack directory, walking up the tree.
// Returns the full path to the .papertrack directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		repoDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(repoDir); err == nil && info.IsDir() {
			return repoDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}
