// Package migrate rewrites legacy restriction-list encodings in update files.
//
// Early releases accepted several list separators ("|", ";", ",", and their
// full-width forms) and referenced tags by their numeric order instead of the
// variable name. The current format is strict: variable names joined by "|".
// Migration rewrites the invalid_fields attribute of every paper in an update
// file to the canonical form, taking a backup of the original first.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/qiwen-lab/papertrack/internal/diff"
	"github.com/qiwen-lab/papertrack/internal/paper"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
	"github.com/qiwen-lab/papertrack/internal/updatefile"
	"github.com/qiwen-lab/papertrack/internal/validate"
)

// legacySeparators matches every separator the old format tolerated,
// including the full-width comma and semicolon.
var legacySeparators = regexp.MustCompile(`[|;,；，]`)

// Value rewrites one restriction-list value to the canonical encoding:
// legacy separators become "|", numeric order references become variable
// names via orders, duplicates collapse to the first occurrence.
func Value(value string, orders map[string]string) string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range legacySeparators.Split(value, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if mapped, ok := orders[tok]; ok {
			tok = mapped
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return strings.Join(out, "|")
}

// Options controls a file migration.
type Options struct {
	// DryRun computes the rewrite and diff without touching the file.
	DryRun bool
	// BackupDir receives a timestamped copy of the original before the
	// rewrite. Empty disables the backup.
	BackupDir string
	// Now stamps the backup file name. Zero means time.Now.
	Now time.Time
}

// Result reports what a file migration did (or would do, under DryRun).
type Result struct {
	Path       string      `json:"path"`
	Total      int         `json:"total"`             // papers in the file
	Changed    int         `json:"changed"`           // papers whose restriction list was rewritten
	Invalid    []string    `json:"invalid,omitempty"` // paper keys whose list still fails validation
	BackupPath string      `json:"backup,omitempty"`  // written backup, empty under DryRun or no backup dir
	Diff       diff.Result `json:"-"`
}

// File migrates the update file at path in place. The rewritten content is
// produced first and compared against the original; identical content means
// no write and no backup.
func File(path string, cfg *tagcfg.Config, opts Options) (*Result, error) {
	papers, err := updatefile.Read(path, cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{Path: path, Total: len(papers)}
	orders := cfg.OrderMap()
	allowed := cfg.Variables()

	for _, p := range papers {
		rewritten := Value(p.InvalidFields, orders)
		if rewritten != p.InvalidFields {
			res.Changed++
			p.InvalidFields = rewritten
		}
		if err := validate.Fields(p.InvalidFields, allowed); err != nil {
			res.Invalid = append(res.Invalid, p.Key())
		}
	}

	oldRaw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read update file: %w", err)
	}
	newRaw, err := render(path, papers, cfg)
	if err != nil {
		return nil, err
	}
	res.Diff = diff.Compute(string(oldRaw), string(newRaw), path, path+" (migrated)")

	if opts.DryRun || res.Diff.Empty() {
		return res, nil
	}

	if opts.BackupDir != "" {
		backup, err := writeBackup(path, oldRaw, opts.BackupDir, opts.Now)
		if err != nil {
			return nil, err
		}
		res.BackupPath = backup
	}

	if err := os.WriteFile(path, newRaw, 0644); err != nil {
		return nil, fmt.Errorf("write migrated file: %w", err)
	}
	return res, nil
}

// render produces the migrated file content without touching path itself.
func render(path string, papers []*paper.Paper, cfg *tagcfg.Config) ([]byte, error) {
	tmp, err := os.CreateTemp("", "papertrack-migrate-*"+filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("stage migrated file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := updatefile.Write(tmpPath, papers, cfg); err != nil {
		return nil, err
	}
	return os.ReadFile(tmpPath)
}

// writeBackup copies the original content into dir under a timestamped name,
// e.g. update.20260824-103000.csv.
func writeBackup(path string, content []byte, dir string, now time.Time) (string, error) {
	if now.IsZero() {
		now = time.Now()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	backup := filepath.Join(dir, fmt.Sprintf("%s.%s%s", name, now.Format("20060102-150405"), ext))

	if err := os.WriteFile(backup, content, 0644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return backup, nil
}
