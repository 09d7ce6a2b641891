// Package main is the entry point for the unfence CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/unfence/internal/cli"
	"github.com/yaklabco/unfence/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Commit and apply failures are already logged per file.
		if !errors.Is(err, cli.ErrFilesFailed) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeForError(err)
	}

	return cli.ExitSuccess
}
