// Package exporter writes stored paper records out to an update file.
//
// Export is the inverse of import: the destination format is chosen by the
// file extension (.csv or .json), and a round-trip through export and import
// preserves every attribute. A .md destination instead renders the
// collection as a markdown reading list, one table per category. Existing
// destinations are protected unless Force is set.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/qiwen-lab/papertrack/internal/format"
	"github.com/qiwen-lab/papertrack/internal/paper"
	"github.com/qiwen-lab/papertrack/internal/progress"
	"github.com/qiwen-lab/papertrack/internal/store"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
	"github.com/qiwen-lab/papertrack/internal/updatefile"
)

// Options configures an export operation.
type Options struct {
	Category string // export only this category
	Status   string // export only this status
	Force    bool   // overwrite an existing destination
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int    // number of papers written
	Path     string // destination file
}

// Run exports papers matching the options to the file at dst.
func Run(ctx context.Context, w io.Writer, st store.Store, cfg *tagcfg.Config, dst string, opts Options) (Result, error) {
	var result Result

	if !opts.Force {
		if _, err := os.Stat(dst); err == nil {
			return result, fmt.Errorf("file exists: %s (use --force to overwrite)", dst)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("checking destination: %w", err)
		}
	}

	records, err := st.List(ctx, store.ListOptions{
		Category: opts.Category,
		Status:   opts.Status,
	})
	if err != nil {
		return result, fmt.Errorf("listing papers: %w", err)
	}
	if len(records) == 0 {
		return result, errors.New("no papers to export")
	}

	switch strings.ToLower(filepath.Ext(dst)) {
	case ".md", ".markdown":
		return exportReadme(w, records, cfg, dst)
	}

	prog := progress.New("Exporting", len(records))
	defer prog.Done()

	papers := make([]*paper.Paper, 0, len(records))
	for i := range records {
		papers = append(papers, &records[i].Paper)
		prog.Increment()
		prog.Print()
	}

	if err := updatefile.Write(dst, papers, cfg); err != nil {
		return result, err
	}

	result.Exported = len(papers)
	result.Path = dst
	fmt.Fprintf(w, "Exported %d papers -> %s\n", result.Exported, dst)
	return result, nil
}

// exportReadme writes the collection as a markdown reading list, one table
// per category. Papers flagged show_in_readme=false are left out.
func exportReadme(w io.Writer, records []store.Record, cfg *tagcfg.Config, dst string) (Result, error) {
	var result Result

	md, shown := format.Readme(records, cfg)
	if shown == 0 {
		return result, errors.New("no papers to export")
	}
	if err := os.WriteFile(dst, []byte(md), 0644); err != nil {
		return result, fmt.Errorf("write markdown file: %w", err)
	}

	result.Exported = shown
	result.Path = dst
	fmt.Fprintf(w, "Exported %d papers -> %s\n", shown, dst)
	return result, nil
}
