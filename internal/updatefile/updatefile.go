// Package updatefile reads and writes paper update files.
//
// Update files are the interchange format of the tracker: contributors
// submit papers as CSV or JSON, and the database itself can be exported to
// either. The two encodings differ only in how array-valued attributes are
// stored - JSON uses real arrays, CSV uses "|"-joined strings - and both
// are normalised to the canonical "|"-joined form on read, so everything
// downstream (validation included) is format-agnostic.
package updatefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qiwen-lab/papertrack/internal/paper"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than
	// .csv and .json.
	ErrUnsupportedFormat = errors.New("unsupported update file format")
	// ErrMalformed is returned when a file parses but doesn't have the
	// expected update-file structure.
	ErrMalformed = errors.New("malformed update file")
)

// Read loads all papers from an update file, dispatching on the file
// extension.
func Read(path string, cfg *tagcfg.Config) ([]*paper.Paper, error) {
	switch ext(path) {
	case ".json":
		return readJSON(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Write saves papers to an update file, dispatching on the file extension.
// The parent directory is created if needed.
func Write(path string, papers []*paper.Paper, cfg *tagcfg.Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating update file directory: %w", err)
		}
	}
	switch ext(path) {
	case ".json":
		return writeJSON(path, papers, cfg)
	case ".csv":
		return writeCSV(path, papers, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
