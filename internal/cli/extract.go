package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/unfence/internal/configloader"
	"github.com/yaklabco/unfence/internal/logging"
	"github.com/yaklabco/unfence/internal/ui/pretty"
	"github.com/yaklabco/unfence/pkg/commit"
	"github.com/yaklabco/unfence/pkg/config"
	"github.com/yaklabco/unfence/pkg/extract"
	"github.com/yaklabco/unfence/pkg/fsutil"
)

type extractFlags struct {
	baseDir string
	logFile string
	backups bool
	verify  bool
	summary bool
}

func newExtractCommand() *cobra.Command {
	var cfg config.Config
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract [document]",
		Short: "Extract files from a fenced markdown document",
		Long: `Extract scans a markdown document for level-3 headings naming files
and fenced code blocks carrying their content, then writes the files
under the base directory. Paths are sanitized so extraction can never
escape the base directory.

Examples:
  unfence extract session.md              Extract into the current directory
  unfence extract session.md -d out/      Extract under out/
  unfence extract session.md --dry-run    List files without writing
  unfence extract session.md --verify     Cross-check fence accounting
  unfence extract session.md --backups    Back up files before overwriting`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.baseDir, "base-dir", "d", "", "directory to extract files under")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "list files without writing them")
	cmd.Flags().BoolVar(&cfg.Verify, "verify", false, "cross-check fence accounting against a markdown parser")
	cmd.Flags().BoolVar(&flags.backups, "backups", false, "back up existing files before overwriting")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "mirror run logs to an append-only file")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a full summary block instead of one line")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, cfg *config.Config, flags *extractFlags) error {
	cfg.BaseDir = flags.baseDir
	cfg.LogFile = flags.logFile
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if flags.backups {
		cfg.Backups.Enabled = true
	}

	ctx, final, err := loadRunConfig(cmd, cfg)
	if err != nil {
		return err
	}

	logger, logClose, err := newRunLogger(cmd, final.LogFile)
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: err}
	}
	defer logClose()

	content, err := fsutil.ReadFile(ctx, final.Input)
	if err != nil {
		logger.Error("cannot read document", logging.FieldInput, final.Input, logging.FieldError, err)
		return &ExitError{Code: ExitIOError, Err: err}
	}

	logger.Debug("extracting",
		logging.FieldInput, final.Input,
		logging.FieldBaseDir, final.BaseDir,
		logging.FieldDryRun, final.DryRun,
	)

	doc := extract.NewDocument(content)
	pending, stats := extract.Scan(doc, extract.Options{
		BaseDir: final.BaseDir,
		Logger:  logger,
	})

	if final.Verify {
		verification := extract.Verify(content, stats)
		if verification.Agree() {
			logger.Debug("fence accounting verified",
				logging.FieldFences, verification.ScannerBlocks)
		} else {
			logger.Warn("fence accounting disagrees with markdown parser",
				"scanner_blocks", verification.ScannerBlocks,
				"markdown_blocks", verification.MarkdownBlocks)
		}
	}

	styles := outputStyles(cmd)

	var result commit.Result
	if final.DryRun {
		for _, f := range pending {
			logger.Info("would write", logging.FieldPath, f.Path.FullPath(), logging.FieldBytes, len(f.Content))
		}
	} else {
		committer := commit.New(&commit.OSFS{Backups: backupConfig(final)}, logger)
		result = committer.CommitAll(ctx, pending)
	}

	if flags.summary {
		fmt.Fprint(cmd.OutOrStdout(), styles.FormatExtractSummary(stats, result, final.DryRun))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), styles.FormatExtractOneLine(stats, result, final.DryRun))
	}

	if !final.DryRun && !result.Ok() {
		return ErrFilesFailed
	}
	return nil
}

// loadRunConfig resolves the merged configuration for a command run.
func loadRunConfig(cmd *cobra.Command, cliCfg *config.Config) (context.Context, *config.Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return ctx, nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return ctx, nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return ctx, nil, &ExitError{
			Code: ExitDataError,
			Err:  errors.Join(errors.New("failed to load configuration"), err),
		}
	}

	for _, warning := range loadResult.Warnings {
		logging.Default().Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logging.Default().Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	return ctx, loadResult.Config, nil
}

// newRunLogger builds the command's logger, mirroring to logFile when set.
func newRunLogger(cmd *cobra.Command, logFile string) (*log.Logger, func(), error) {
	level := "info"
	if debug, ferr := cmd.Flags().GetBool("debug"); ferr == nil && debug {
		level = "debug"
	}

	logger, closer, err := logging.NewRunLogger(level, logFile)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}

// outputStyles resolves styled output for the command's stdout.
func outputStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}

// backupConfig converts the persisted backup settings to fsutil's form.
func backupConfig(cfg *config.Config) fsutil.BackupConfig {
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled,
		Mode:    mode,
	}
}
