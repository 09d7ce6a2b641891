package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/unfence/internal/logging"
	"github.com/yaklabco/unfence/pkg/bundle"
	"github.com/yaklabco/unfence/pkg/config"
)

type bundleFlags struct {
	output   string
	logFile  string
	patterns []string
	mode     string
}

func newBundleCommand() *cobra.Command {
	var cfg config.Config
	flags := &bundleFlags{}

	cmd := &cobra.Command{
		Use:   "bundle [directory]",
		Short: "Render a directory tree as a single markdown document",
		Long: `Bundle walks a directory tree and emits one markdown section per file:
a level-3 heading with the relative path, then a fenced block with the
content. Extracting the result reproduces the tree byte for byte.

Per-directory .gitignore files are honored, version control directories
and binary files are skipped, and the output file never bundles itself.

Examples:
  unfence bundle                          Bundle the current directory
  unfence bundle src/ -o src.md           Bundle src/ into src.md
  unfence bundle --patterns .go --mode include   Only .go files
  unfence bundle --detect-lang            Annotate fences with language tags`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "bundle output path")
	cmd.Flags().StringSliceVar(&flags.patterns, "patterns", nil, "substring filters for files to bundle")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "pattern mode: include or exclude")
	cmd.Flags().BoolVar(&cfg.DetectLang, "detect-lang", false, "annotate fences with detected language tags")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "mirror run logs to an append-only file")

	return cmd
}

func runBundle(cmd *cobra.Command, args []string, cfg *config.Config, flags *bundleFlags) error {
	cfg.Output = flags.output
	cfg.LogFile = flags.logFile
	cfg.Patterns = flags.patterns
	cfg.Mode = config.Mode(flags.mode)
	if len(args) == 1 {
		cfg.BaseDir = args[0]
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

	logger.Debug("bundling",
		logging.FieldBaseDir, final.BaseDir,
		logging.FieldOutput, final.Output,
		logging.FieldMode, string(final.Mode),
	)

	stats, written, err := bundle.Write(ctx, bundle.Options{
		Root:       final.BaseDir,
		Output:     final.Output,
		Patterns:   final.Patterns,
		Mode:       bundle.Mode(final.Mode),
		DetectLang: final.DetectLang,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("bundle failed", logging.FieldError, err)
		return &ExitError{Code: ExitIOError, Err: err}
	}

	styles := outputStyles(cmd)
	fmt.Fprint(cmd.OutOrStdout(), styles.FormatBundleOneLine(stats, written, final.Output))

	return nil
}
