/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// import.go implements the "papertrack import" command for loading update
// files into the paper database.

package cmd

import (
	"fmt"
	"io"

	"github.com/qiwen-lab/papertrack/internal/importer"
	"github.com/qiwen-lab/papertrack/internal/log"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file>",
		Short: "Import papers from an update file",
		Long: `Validate and import paper records from a CSV or JSON update file.

Records that fail validation are reported and skipped. Exact duplicates of
stored papers are skipped. Records sharing a DOI or title with a stored
paper but carrying different fields are conflicts, resolved per
--on-conflict:

  skip     leave the stored paper untouched (default)
  replace  overwrite the stored paper
  mark     keep both, flagging the incoming record with the conflict marker`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	c.Flags().Bool("dry-run", false, "Show what would be imported without writing")
	c.Flags().Bool("required", false, "Also enforce required tags")
	c.Flags().String("on-conflict", importer.ConflictSkip, "Conflict resolution: skip, replace, mark")
	return c
}

func runImport(c *cobra.Command, args []string) error {
	path := args[0]
	dryRun, _ := c.Flags().GetBool("dry-run")
	required, _ := c.Flags().GetBool("required")
	onConflict, _ := c.Flags().GetString("on-conflict")

	w := Out()
	if JSON() {
		w = io.Discard
	}
	res, err := importer.Run(c.Context(), w, appStore, appTags, path, importer.Options{
		DryRun:           dryRun,
		CheckRequired:    required,
		OnConflict:       onConflict,
		Author:           Author(),
		ConflictMarkText: appCfg.ConflictMarker(),
	})

	log.Event("paper:import", "import").
		Author(Author()).
		File(path).
		Count(res.Imported).
		Detail("duplicates", res.Duplicates).
		Detail("conflicts", res.Conflicts).
		Detail("invalid", len(res.Invalid)).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("import %q: %w", path, err))
	}

	if err := PrintJSON(res); err != nil {
		return err
	}
	if !JSON() {
		fmt.Fprintf(Out(), "%d imported, %d duplicates, %d conflicts, %d invalid\n",
			res.Imported, res.Duplicates, res.Conflicts, len(res.Invalid))
	}

	if len(res.Invalid) > 0 {
		c.SilenceUsage = true
		c.SilenceErrors = true
		return fmt.Errorf("%d invalid records", len(res.Invalid))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newImportCmd())
}
