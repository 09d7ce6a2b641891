package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/unfence/internal/logging"
	"github.com/yaklabco/unfence/pkg/config"
	"github.com/yaklabco/unfence/pkg/fsutil"
	"github.com/yaklabco/unfence/pkg/modify"
)

type applyFlags struct {
	baseDir string
	logFile string
}

func newApplyCommand() *cobra.Command {
	var cfg config.Config
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply <instructions>",
		Short: "Apply JSON-described edits to existing files",
		Long: `Apply reads a JSON instruction document and runs its changes against
existing files. Each change names a target file and an ordered list of
actions: replace_between_markers, append, prepend, regex_replace, and
replace_line_containing. Instruction files wrapped in a json code fence
are unwrapped automatically.

Missing target files are skipped with a warning; a failing change does
not stop the rest.

Examples:
  unfence apply changes.json              Apply edits relative to the current directory
  unfence apply changes.json -d src/      Apply edits relative to src/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.baseDir, "base-dir", "d", "", "directory relative target paths are anchored to")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "mirror run logs to an append-only file")

	return cmd
}

func runApply(cmd *cobra.Command, instructionPath string, cfg *config.Config, flags *applyFlags) error {
	cfg.BaseDir = flags.baseDir
	cfg.LogFile = flags.logFile

	ctx, final, err := loadRunConfig(cmd, cfg)
	if err != nil {
		return err
	}

	logger, logClose, err := newRunLogger(cmd, final.LogFile)
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: err}
	}
	defer logClose()

	raw, err := fsutil.ReadFile(ctx, instructionPath)
	if err != nil {
		logger.Error("cannot read instructions", logging.FieldPath, instructionPath, logging.FieldError, err)
		return &ExitError{Code: ExitIOError, Err: err}
	}

	set, err := modify.ParseInstructions(raw)
	if err != nil {
		logger.Error("cannot parse instructions", logging.FieldPath, instructionPath, logging.FieldError, err)
		return &ExitError{Code: ExitDataError, Err: err}
	}

	logger.Debug("applying changes",
		logging.FieldChanges, len(set.Changes),
		logging.FieldBaseDir, final.BaseDir,
	)

	engine := &modify.Engine{BaseDir: final.BaseDir, Logger: logger}
	result := engine.Apply(ctx, set)

	styles := outputStyles(cmd)
	fmt.Fprint(cmd.OutOrStdout(), styles.FormatApplyOneLine(result))

	if !result.Ok() {
		return fmt.Errorf("%w: %d of %d changes failed",
			ErrFilesFailed, len(result.Failures), len(set.Changes))
	}
	return nil
}
