package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/unfence/internal/logging"
	"github.com/yaklabco/unfence/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new unfence configuration file",
		Long: `Create a new .unfence.yml configuration file in the current directory
with sensible defaults. The file can be customized to change the base
directory, bundle filters, backups, and other options.

Examples:
  unfence init                      Create .unfence.yml
  unfence init --output custom.yml  Write to a custom file path
  unfence init --force              Overwrite an existing file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .unfence.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.Default()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".unfence.yml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		switch {
		case flags.force:
			logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
		case isInteractive():
			overwrite, err := promptOverwrite(outputPath)
			if err != nil {
				return err
			}
			if !overwrite {
				logger.Info("leaving existing file untouched", logging.FieldPath, outputPath)
				return nil
			}
		default:
			return &ExitError{
				Code: ExitInvalidUsage,
				Err:  fmt.Errorf("file %q already exists; use --force to overwrite", outputPath),
			}
		}
	}

	if err := os.WriteFile(absPath, config.GenerateTemplate(), configFilePermissions); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("write file: %w", err)}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize your configuration by editing the file")

	return nil
}

// promptOverwrite asks the user whether to replace an existing file.
func promptOverwrite(path string) (bool, error) {
	if _, err := os.Stdout.WriteString("File " + path + " already exists\n"); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	if _, err := os.Stdout.WriteString("Overwrite? [y/N] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
