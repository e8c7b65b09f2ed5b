/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// version.go implements the "papertrack version" command.

package cmd

import (
	"fmt"

	"github.com/qiwen-lab/papertrack/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()
			if JSON() {
				return PrintJSON(info)
			}
			fmt.Fprint(Out(), info.String())
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
