// Package importer loads paper records from an update file into the store.
//
// Each record is validated against the tag configuration before anything is
// written. Records that fail validation are reported and skipped; they never
// reach the database. Records that exactly duplicate a stored paper are
// skipped. Records that share an identity (DOI or title) with a stored paper
// but carry different fields are conflicts, resolved per Options.OnConflict.
package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/qiwen-lab/papertrack/internal/paper"
	"github.com/qiwen-lab/papertrack/internal/progress"
	"github.com/qiwen-lab/papertrack/internal/store"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
	"github.com/qiwen-lab/papertrack/internal/updatefile"
	"github.com/qiwen-lab/papertrack/internal/validate"
)

// Conflict resolution modes.
const (
	// ConflictSkip leaves the stored paper untouched.
	ConflictSkip = "skip"
	// ConflictReplace overwrites the stored paper with the incoming record.
	ConflictReplace = "replace"
	// ConflictMark stores the incoming record flagged with the conflict
	// marker so a human can reconcile later.
	ConflictMark = "mark"
)

// Options configures an import operation.
type Options struct {
	DryRun           bool      // report what would happen without writing
	CheckRequired    bool      // enforce required tags during validation
	OnConflict       string    // ConflictSkip (default), ConflictReplace, ConflictMark
	Author           string    // recorded as contributor when the record has none
	ConflictMarkText string    // marker prefix recognised in DOIs
	Now              time.Time // submission timestamp, zero means time.Now
}

// InvalidRecord describes one record that failed validation.
type InvalidRecord struct {
	Key    string   // doi_title identity key
	Errors []string // one message per failed check
	Attrs  []string // attributes that failed
}

// Result contains the outcome of an import operation.
type Result struct {
	Total      int             // records in the update file
	Imported   int             // records written to the store
	Duplicates int             // exact duplicates skipped
	Conflicts  int             // identity clashes encountered
	Invalid    []InvalidRecord // records rejected by validation
}

// Run imports the update file at path into st.
func Run(ctx context.Context, w io.Writer, st store.Store, cfg *tagcfg.Config, path string, opts Options) (Result, error) {
	var result Result

	papers, err := updatefile.Read(path, cfg)
	if err != nil {
		return result, err
	}
	result.Total = len(papers)
	if len(papers) == 0 {
		return result, nil
	}

	stored, err := st.List(ctx, store.ListOptions{})
	if err != nil {
		return result, fmt.Errorf("listing stored papers: %w", err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	mode := opts.OnConflict
	if mode == "" {
		mode = ConflictSkip
	}

	prog := progress.New("Importing", len(papers))
	defer prog.Done()

	for _, p := range papers {
		prog.Increment()
		prog.Print()

		report := p.Validate(cfg, paper.ValidateOptions{
			CheckRequired: opts.CheckRequired,
			ConflictMark:  opts.ConflictMarkText,
		})
		if !report.Valid() {
			result.Invalid = append(result.Invalid, InvalidRecord{
				Key:    p.Key(),
				Errors: report.Errors,
				Attrs:  report.InvalidAttrs(),
			})
			fmt.Fprintf(w, "Invalid: %s\n", p.Key())
			for _, msg := range report.Errors {
				fmt.Fprintf(w, "  %s\n", msg)
			}
			continue
		}

		match := findIdentity(stored, p, opts.ConflictMarkText)
		if match != nil {
			eq := paper.EqualOptions{ConflictMark: opts.ConflictMarkText}
			if paper.FieldsEqual(p, &match.Paper, cfg, eq) {
				result.Duplicates++
				fmt.Fprintf(w, "Duplicate: %s\n", p.Key())
				continue
			}

			result.Conflicts++
			switch mode {
			case ConflictSkip:
				fmt.Fprintf(w, "Conflict (skipped): %s\n", p.Key())
				continue
			case ConflictReplace:
				if !opts.DryRun {
					if err := st.Delete(ctx, match.UID); err != nil {
						return result, fmt.Errorf("replacing %s: %w", p.Key(), err)
					}
				}
				fmt.Fprintf(w, "Conflict (replaced): %s\n", p.Key())
			case ConflictMark:
				// The marker prefix gives the record a distinct identity so
				// both versions survive until a human reconciles them.
				p.ConflictMarker = true
				p.DOI = opts.ConflictMarkText + validate.CleanDOI(p.DOI, "")
				fmt.Fprintf(w, "Conflict (marked): %s\n", p.Key())
			default:
				return result, fmt.Errorf("unknown conflict mode: %q", mode)
			}
		}

		if p.Contributor == "" {
			p.Contributor = opts.Author
		}
		p.DOI = validate.CleanDOI(p.DOI, "")
		p.Touch(now)

		if opts.DryRun {
			fmt.Fprintf(w, "Would import: %s\n", p.Key())
			result.Imported++
			continue
		}

		if err := st.Put(ctx, p); err != nil {
			return result, fmt.Errorf("storing %s: %w", p.Key(), err)
		}
		fmt.Fprintf(w, "Imported: %s\n", p.Key())
		result.Imported++
	}

	return result, nil
}

// findIdentity returns the stored record sharing an identity with p, if any.
func findIdentity(stored []store.Record, p *paper.Paper, conflictMark string) *store.Record {
	for i := range stored {
		if paper.SameIdentity(&stored[i].Paper, p, conflictMark) {
			return &stored[i]
		}
	}
	return nil
}
