/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// migrate.go implements the "papertrack migrate" command for rewriting
// legacy restriction-list encodings in update files.

package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/qiwen-lab/papertrack/internal/config"
	"github.com/qiwen-lab/papertrack/internal/log"
	"github.com/qiwen-lab/papertrack/internal/migrate"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "migrate <path>...",
		Short: "Rewrite legacy invalid_fields encodings in update files",
		Long: `Rewrite the invalid_fields attribute of every paper in the given update
files to the canonical form: variable names joined by "|". Legacy separators
(";", ",", and their full-width forms) and numeric tag-order references are
converted; duplicates are collapsed.

A timestamped backup of each original is written before the rewrite. Use
--dry-run to preview the change as a diff, --recursive to migrate every
.csv and .json file under a directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMigrate,
	}
	c.Flags().Bool("dry-run", false, "Show the rewrite as a diff without touching files")
	c.Flags().Bool("no-backup", false, "Skip the backup copy")
	c.Flags().BoolP("recursive", "r", false, "Descend into directories, migrating every update file")
	return c
}

func runMigrate(c *cobra.Command, args []string) error {
	dryRun, _ := c.Flags().GetBool("dry-run")
	noBackup, _ := c.Flags().GetBool("no-backup")
	recursive, _ := c.Flags().GetBool("recursive")

	cfg, err := loadTagConfig()
	if err != nil {
		return PrintJSONError(err)
	}

	appConf, err := config.Load()
	if err != nil {
		return PrintJSONError(err)
	}
	backupDir := appConf.BackupDir()
	if noBackup {
		backupDir = ""
	}

	paths, err := collectUpdateFiles(args, recursive)
	if err != nil {
		return PrintJSONError(err)
	}

	var results []*migrate.Result
	for _, path := range paths {
		res, err := migrate.File(path, cfg, migrate.Options{
			DryRun:    dryRun,
			BackupDir: backupDir,
		})

		b := log.Event("paper:migrate", "migrate").Author(Author()).File(path)
		if res != nil {
			b = b.Count(res.Changed).Detail("dry_run", dryRun)
		}
		b.Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("migrate %q: %w", path, err))
		}
		results = append(results, res)
	}

	if JSON() {
		return PrintJSON(results)
	}

	for _, res := range results {
		if dryRun && !res.Diff.Empty() {
			fmt.Fprint(Out(), res.Diff.Format())
		}
		prefix := ""
		if len(results) > 1 {
			prefix = res.Path + ": "
		}
		fmt.Fprintf(Out(), "%s%d of %d papers rewritten\n", prefix, res.Changed, res.Total)
		if res.BackupPath != "" {
			fmt.Fprintf(Out(), "Backup: %s\n", res.BackupPath)
		}
		for _, key := range res.Invalid {
			fmt.Fprintf(Out(), "still invalid: %s\n", key)
		}
	}
	return nil
}

// collectUpdateFiles expands the argument list. Without recursive, every
// argument must be a file. With recursive, directory arguments are walked
// and every .csv and .json file under them is included.
func collectUpdateFiles(args []string, recursive bool) ([]string, error) {
	if !recursive {
		return args, nil
	}

	var out []string
	for _, arg := range args {
		err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".csv", ".json":
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %q: %w", arg, err)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no update files found under %s", strings.Join(args, ", "))
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(newMigrateCmd())
}
