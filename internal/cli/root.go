// Package cli provides the Cobra command structure for unfence.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/unfence/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root unfence command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "unfence",
		Short: "Extract file trees from fenced markdown, and put them back",
		Long: `unfence turns markdown documents with fenced code blocks into file
trees and back again.

A level-3 heading names the next file; the fenced block that follows
carries its content. The extract command materializes those files on
disk, bundle renders a directory tree as a single document, and apply
runs JSON-described edits against existing files.`,
		Example: `  unfence extract session.md -d ./src     Materialize files from a document
  unfence bundle ./src -o bundle.md       Render a tree as one document
  unfence apply changes.json -d ./src     Apply JSON-described edits
  unfence init                            Write a starter .unfence.yml`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Flag parse failures are usage errors, not internal ones.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitInvalidUsage, Err: err}
	})

	// Add subcommands.
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newBundleCommand())
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
