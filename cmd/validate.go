/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// validate.go implements the "papertrack validate" command for checking
// update files without touching the database.
//
// Design: validate is a storeless command so contributors can check their
// update files before a repository even exists. The tag configuration comes
// from the discovered repository when available, else the built-in defaults.

package cmd

import (
	"fmt"

	"github.com/qiwen-lab/papertrack/internal/format"
	"github.com/qiwen-lab/papertrack/internal/log"
	"github.com/qiwen-lab/papertrack/internal/paper"
	"github.com/qiwen-lab/papertrack/internal/updatefile"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate update files",
		Long: `Check every paper record in one or more CSV or JSON update files against
the tag configuration: DOI and URL formats, author lists, tag types and
validation patterns, and the invalid_fields restriction list.

Exits non-zero when any record fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}
	c.Flags().Bool("required", false, "Also enforce required tags")
	return c
}

type recordResult struct {
	Key     string   `json:"key"`
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors,omitempty"`
	Invalid []string `json:"invalid_fields,omitempty"`
}

type fileResult struct {
	File    string         `json:"file"`
	Total   int            `json:"total"`
	Invalid int            `json:"invalid"`
	Records []recordResult `json:"records,omitempty"`
}

func runValidate(c *cobra.Command, args []string) error {
	required, _ := c.Flags().GetBool("required")

	cfg, err := loadTagConfig()
	if err != nil {
		return PrintJSONError(err)
	}

	marker := ""
	if appCfg != nil {
		marker = appCfg.ConflictMarker()
	}

	var files []fileResult
	total, invalid := 0, 0

	for _, path := range args {
		papers, err := updatefile.Read(path, cfg)
		if err != nil {
			log.Event("paper:validate", "validate").File(path).Write(err)
			return PrintJSONError(fmt.Errorf("validate %q: %w", path, err))
		}

		fr := fileResult{File: path, Total: len(papers)}
		for _, p := range papers {
			report := p.Validate(cfg, paper.ValidateOptions{
				CheckRequired: required,
				ConflictMark:  marker,
			})
			if !report.Valid() {
				fr.Invalid++
			}
			if JSON() {
				fr.Records = append(fr.Records, recordResult{
					Key:     p.Key(),
					Valid:   report.Valid(),
					Errors:  report.Errors,
					Invalid: report.InvalidAttrs(),
				})
				continue
			}
			_ = format.ValidationReport(Out(), p.Key(), report)
		}

		log.Event("paper:validate", "validate").
			File(path).
			Count(fr.Total).
			Detail("invalid", fr.Invalid).
			Write(nil)

		files = append(files, fr)
		total += fr.Total
		invalid += fr.Invalid
	}

	if JSON() {
		if err := PrintJSON(map[string]any{
			"total":   total,
			"invalid": invalid,
			"files":   files,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(Out(), "%d papers checked, %d invalid\n", total, invalid)
	}

	if invalid > 0 {
		c.SilenceUsage = true
		c.SilenceErrors = true
		return fmt.Errorf("%d invalid records", invalid)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newValidateCmd())
}
