// Package tagcfg provides reading and writing of the tag configuration.
//
// The tag configuration defines the tag variables a paper record may carry
// (name, display name, type, ordering, validation rules) and the category
// vocabulary. It is the source of truth for which variables the
// invalid_fields restriction list may reference: the record validator builds
// its allowed set from here.
//
// Stored as YAML in .papertrack/tags.yaml. The file is read-mostly; only
// "papertrack init" writes it.
package tagcfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/qiwen-lab/papertrack/internal/validate"
)

var (
	// ErrInvalidConfig is returned when the tag configuration itself fails
	// validation (duplicate variables, bad identifiers, broken patterns).
	ErrInvalidConfig = errors.New("invalid tag configuration")
)

// Tag types understood by the record validator.
const (
	TypeString = "string"
	TypeBool   = "bool"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeEnum   = "enum"
)

// Tag describes one tag variable of a paper record.
type Tag struct {
	Variable    string `yaml:"variable"`
	DisplayName string `yaml:"display_name,omitempty"`
	Type        string `yaml:"type,omitempty"` // defaults to string
	Order       int    `yaml:"order"`
	Required    bool   `yaml:"required,omitempty"`
	System      bool   `yaml:"system,omitempty"` // maintained by the tool, not the user
	Validation  string `yaml:"validation,omitempty"` // optional regex for values
	Enabled     *bool  `yaml:"enabled,omitempty"`    // defaults to true
}

// IsEnabled reports whether the tag is active. Unset means enabled.
func (t Tag) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// Display returns the display name, falling back to the variable.
func (t Tag) Display() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.Variable
}

// Category describes one entry of the category vocabulary.
type Category struct {
	UniqueName string `yaml:"unique_name"`
	Name       string `yaml:"name"`
	Order      int    `yaml:"order"`
	Enabled    *bool  `yaml:"enabled,omitempty"` // defaults to true
}

// IsEnabled reports whether the category is active. Unset means enabled.
func (c Category) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Config is the full tag configuration.
type Config struct {
	Version    string     `yaml:"version,omitempty"`
	Tags       []Tag      `yaml:"tags"`
	Categories []Category `yaml:"categories"`

	patternsOnce sync.Once
	patterns     map[string]*regexp.Regexp
}

// FileName is the tag configuration file name inside the repository dir.
const FileName = "tags.yaml"

// PathIn returns the tag configuration path inside a repository directory.
func PathIn(repoDir string) string {
	return filepath.Join(repoDir, FileName)
}

// Load reads and validates the tag configuration at path. A missing file
// returns the default configuration so validation keeps working on
// repositories initialised by older versions.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read tag configuration %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed tag configuration %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("tag configuration %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating tag configuration directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling tag configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing tag configuration: %w", err)
	}
	return nil
}

// ActiveTags returns enabled tags sorted by order.
func (c *Config) ActiveTags() []Tag {
	var out []Tag
	for _, t := range c.Tags {
		if t.IsEnabled() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// RequiredTags returns enabled tags marked required, sorted by order.
func (c *Config) RequiredTags() []Tag {
	var out []Tag
	for _, t := range c.ActiveTags() {
		if t.Required {
			out = append(out, t)
		}
	}
	return out
}

// SystemTags returns enabled tags maintained by the tool itself. These are
// skipped when comparing records for duplicate detection.
func (c *Config) SystemTags() []Tag {
	var out []Tag
	for _, t := range c.ActiveTags() {
		if t.System {
			out = append(out, t)
		}
	}
	return out
}

// Variables returns the set of active tag variable names. This is the
// allowed set consumed by validate.Fields; the validator only reads it.
func (c *Config) Variables() validate.Variables {
	v := make(validate.Variables)
	for _, t := range c.ActiveTags() {
		v[t.Variable] = struct{}{}
	}
	return v
}

// Pattern returns the compiled validation pattern for a tag variable, or nil
// when the tag has no pattern or it does not compile. Patterns are compiled
// once per Config and shared by every record validation.
func (c *Config) Pattern(variable string) *regexp.Regexp {
	c.patternsOnce.Do(func() {
		c.patterns = make(map[string]*regexp.Regexp)
		for _, t := range c.Tags {
			if t.Validation == "" {
				continue
			}
			if re, err := regexp.Compile(t.Validation); err == nil {
				c.patterns[t.Variable] = re
			}
		}
	})
	return c.patterns[variable]
}

// OrderMap maps legacy numeric order strings to tag variables. The old
// storage format referenced tags by order; migration uses this to rewrite
// those references to variable names.
func (c *Config) OrderMap() map[string]string {
	m := make(map[string]string)
	for _, t := range c.ActiveTags() {
		m[strconv.Itoa(t.Order)] = t.Variable
	}
	return m
}

// ActiveCategories returns enabled categories sorted by order.
func (c *Config) ActiveCategories() []Category {
	var out []Category
	for _, cat := range c.Categories {
		if cat.IsEnabled() {
			out = append(out, cat)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// CategoryNames returns the unique names of active categories, in order.
func (c *Config) CategoryNames() []string {
	var out []string
	for _, cat := range c.ActiveCategories() {
		out = append(out, cat.UniqueName)
	}
	return out
}

// Validate checks the configuration's internal consistency: unique and
// legal variable names, unique tag orders, known types, compilable
// validation patterns, unique category names and orders.
func (c *Config) Validate() error {
	seenVar := make(map[string]bool)
	seenOrder := make(map[int]string)

	for _, t := range c.Tags {
		if err := validate.Identifier(t.Variable); err != nil {
			return fmt.Errorf("%w: tag variable: %v", ErrInvalidConfig, err)
		}
		if seenVar[t.Variable] {
			return fmt.Errorf("%w: duplicate tag variable %q", ErrInvalidConfig, t.Variable)
		}
		seenVar[t.Variable] = true

		if prev, dup := seenOrder[t.Order]; dup {
			return fmt.Errorf("%w: tags %q and %q share order %d", ErrInvalidConfig, prev, t.Variable, t.Order)
		}
		seenOrder[t.Order] = t.Variable

		switch t.Type {
		case "", TypeString, TypeBool, TypeInt, TypeFloat, TypeEnum:
		default:
			return fmt.Errorf("%w: tag %q has unknown type %q", ErrInvalidConfig, t.Variable, t.Type)
		}

		if t.Validation != "" {
			if _, err := regexp.Compile(t.Validation); err != nil {
				return fmt.Errorf("%w: tag %q has a broken validation pattern: %v", ErrInvalidConfig, t.Variable, err)
			}
		}
	}

	seenCat := make(map[string]bool)
	seenCatOrder := make(map[int]string)
	for _, cat := range c.Categories {
		if cat.UniqueName == "" {
			return fmt.Errorf("%w: category with empty unique_name", ErrInvalidConfig)
		}
		if seenCat[cat.UniqueName] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidConfig, cat.UniqueName)
		}
		seenCat[cat.UniqueName] = true

		if cat.Name == "" {
			return fmt.Errorf("%w: category %q has no display name", ErrInvalidConfig, cat.UniqueName)
		}
		if prev, dup := seenCatOrder[cat.Order]; dup {
			return fmt.Errorf("%w: categories %q and %q share order %d", ErrInvalidConfig, prev, cat.UniqueName, cat.Order)
		}
		seenCatOrder[cat.Order] = cat.UniqueName
	}

	return nil
}
