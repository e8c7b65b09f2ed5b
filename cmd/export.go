/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// export.go implements the "papertrack export" command for writing the
// paper database out to an update file.

package cmd

import (
	"fmt"
	"io"

	"github.com/qiwen-lab/papertrack/internal/exporter"
	"github.com/qiwen-lab/papertrack/internal/log"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <file>",
		Short: "Export papers to an update file",
		Long: `Write stored paper records to an update file. The format is chosen by
the file extension: .csv and .json produce update files that import back
losslessly, .md produces a markdown reading list with one table per
category (papers with show_in_readme unset are left out). Existing files
are not overwritten unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
	c.Flags().String("category", "", "Export only this category")
	c.Flags().String("status", "", "Export only this status")
	return c
}

func runExport(c *cobra.Command, args []string) error {
	dst := args[0]
	category, _ := c.Flags().GetString("category")
	status, _ := c.Flags().GetString("status")

	w := Out()
	if JSON() {
		w = io.Discard
	}
	res, err := exporter.Run(c.Context(), w, appStore, appTags, dst, exporter.Options{
		Category: category,
		Status:   status,
		Force:    Force(),
	})

	log.Event("paper:export", "export").
		Author(Author()).
		File(dst).
		Count(res.Exported).
		Detail("category", category).
		Detail("status", status).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("export %q: %w", dst, err))
	}
	return PrintJSON(res)
}

func init() {
	rootCmd.AddCommand(newExportCmd())
}
