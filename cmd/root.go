/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: PersistentPreRunE handles store initialisation lazily - only
// commands that need the database trigger bootstrap. This enables bootstrap
// commands (init, config, version) and file-only commands (validate,
// migrate) to work without a repository existing. The noStoreCommands map
// in bootstrap.go controls which commands skip initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/qiwen-lab/papertrack/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "papertrack",
	Short: "Track and validate research paper records",
	Long:  `A local tracker for research paper reading lists: validated paper records in SQLite, imported from and exported to CSV/JSON update files.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Detect author if not explicitly set
		if author == "" {
			author = detectAuthor()
		}

		cmdName := topLevelCmdName(cmd)
		if authorRequiredCommands[cmdName] && author == "" {
			return fmt.Errorf("author not configured (checked .papertrack/config.yaml and ~/.papertrack/config.yaml)\n\nRun: papertrack config author.name \"Your Name\"")
		}

		if !noStoreCommands[cmdName] {
			if err := bootstrap(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return err
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "papertrack import update.csv", returns "import".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and ensures the store is
// closed before exit. Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	err := rootCmd.Execute()

	if appStore != nil {
		if closeErr := appStore.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
