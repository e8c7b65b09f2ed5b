// Package config provides reading and writing of papertrack configuration.
// Supports both global (~/.papertrack/config.yaml) and local
// (.papertrack/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.papertrack/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .papertrack/config.yaml
	ScopeLocal
)

// Author represents the contributor recorded on submitted papers.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Paths holds filesystem locations used by the tracker.
type Paths struct {
	Database  *string `yaml:"database,omitempty"`
	BackupDir *string `yaml:"backup_dir,omitempty"`
}

// Database holds database behaviour options.
type Database struct {
	ConflictMarker *string `yaml:"conflict_marker,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultRepoDir        = ".papertrack"
	DefaultDatabaseFile   = "papertrack.db"
	DefaultBackupDirName  = "backup"
	DefaultConflictMarker = "[conflict]"
)

// Config contains configuration for papertrack.
type Config struct {
	Author   Author   `yaml:"author,omitempty"`
	Paths    Paths    `yaml:"paths,omitempty"`
	Database Database `yaml:"database,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// DatabasePath returns the configured database path
// (defaults to .papertrack/papertrack.db).
func (c *Config) DatabasePath() string {
	if c.Paths.Database == nil || *c.Paths.Database == "" {
		return filepath.Join(DefaultRepoDir, DefaultDatabaseFile)
	}
	return *c.Paths.Database
}

// BackupDir returns the configured backup directory
// (defaults to .papertrack/backup).
func (c *Config) BackupDir() string {
	if c.Paths.BackupDir == nil || *c.Paths.BackupDir == "" {
		return filepath.Join(DefaultRepoDir, DefaultBackupDirName)
	}
	return *c.Paths.BackupDir
}

// ConflictMarker returns the marker prefixed to conflicting DOIs
// (defaults to "[conflict]").
func (c *Config) ConflictMarker() string {
	if c.Database.ConflictMarker == nil {
		return DefaultConflictMarker
	}
	return *c.Database.ConflictMarker
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(DefaultRepoDir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file:
// ~/.papertrack/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultRepoDir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
