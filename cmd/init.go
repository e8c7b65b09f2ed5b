/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// init.go implements the "papertrack init" command for repository
// initialisation. Init is special because it runs before a store exists and
// creates the initial database and tag configuration.
//
// Design: init does NOT create user config - that's managed separately via
// "papertrack config". This follows git's model where init creates the
// repository structure and config is separate.

package cmd

import (
	"fmt"

	"github.com/qiwen-lab/papertrack/internal/log"
	"github.com/qiwen-lab/papertrack/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialise a new papertrack repository",
		Long: `Creates a .papertrack directory in the current directory with an empty
paper database and the default tag configuration.

Use --dir to create in a different directory:
  papertrack init --dir /path/to/project

Note: init does not create config. Use "papertrack config" to set up
configuration.`,
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	err := repo.Init(Force(), Dir())

	log.Event("repo:init", "init").
		Author(Author()).
		Detail("dir", Dir()).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := repo.Dir
	if d := Dir(); d != "" {
		loc = d + "/" + repo.Dir
	}
	if err := PrintJSON(map[string]string{"initialised": loc}); err != nil {
		return err
	}
	if !JSON() {
		fmt.Fprintf(Out(), "Initialised papertrack repository in %s\n", loc)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newInitCmd())
}
