// config_keys.go implements dotted-key access to configuration values.
//
// Separated from config.go to isolate the key mapping from load/save logic.
// The "papertrack config" command reads and writes settings through these
// accessors, so every user-settable option must appear here.

package config

import (
	"fmt"
	"strings"
)

// keys lists every settable configuration key, in display order.
var keys = []string{
	"author.name",
	"author.email",
	"paths.database",
	"paths.backup_dir",
	"database.conflict_marker",
}

// Keys returns all settable configuration keys, in display order.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Get returns the value for a dotted key. Unset optional values return the
// applied default.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "paths.database":
		return c.DatabasePath(), nil
	case "paths.backup_dir":
		return c.BackupDir(), nil
	case "database.conflict_marker":
		return c.ConflictMarker(), nil
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownKey, key, strings.Join(keys, ", "))
}

// Set assigns the value for a dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		if value != "" && !strings.Contains(value, "@") {
			return fmt.Errorf("%w: author.email %q", ErrInvalidValue, value)
		}
		c.Author.Email = value
	case "paths.database":
		c.Paths.Database = &value
	case "paths.backup_dir":
		c.Paths.BackupDir = &value
	case "database.conflict_marker":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: database.conflict_marker cannot be blank", ErrInvalidValue)
		}
		c.Database.ConflictMarker = &value
	default:
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownKey, key, strings.Join(keys, ", "))
	}
	return nil
}

// All returns every key with its effective value, in display order.
func (c *Config) All() [][2]string {
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		v, _ := c.Get(k)
		out = append(out, [2]string{k, v})
	}
	return out
}
