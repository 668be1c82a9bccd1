package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/dirdiff/pkg/engine"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/output"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Original string
	Modified string
	Output   string

	Ignore        []string
	ShallowIgnore []string
	Include       []string
	MaxDepth      int
	Method        string
	Strategy      string
	Context       int
	TagDirs       bool
	Format        string
	Progress      bool

	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	compareFlags = CompareFlags{}

	cmd := &cobra.Command{
		Use:   "compare <original_dir> <modified_dir> <output_file>",
		Short: "Compare two directory trees and write a report",
		Long: `Compare an original and a modified directory tree and write a report of
new, deleted and modified files to output_file.

Report methods:
  general   directory tree with status tags, then full before/after content
  unified   full original content followed by the changes as diff hunks
  includes  diff hunks only for modified files

Filtering:
  --ignore          drop any path with a component matching the pattern
  --shallow-ignore  list a top-level directory but skip its contents
  --include         keep only paths starting with one of the prefixes
  --max-depth       drop paths with more components than the limit

--ignore, --shallow-ignore and --include take several values either by
repeating the flag or as a comma-separated list:
  dirdiff compare old new report.txt --ignore .git --ignore node_modules
  dirdiff compare old new report.txt --ignore .git,node_modules`,
		Args: cobra.ExactArgs(3),
		RunE: runCompare,
	}

	addFilterFlags(cmd, &compareFlags)
	addReportFlags(cmd, &compareFlags)
	addLoggingFlags(cmd, &compareFlags)

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	compareFlags.Original, compareFlags.Modified, compareFlags.Output = args[0], args[1], args[2]

	// Validate flags
	if err := validateCompareFlags(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	operation, err := createCompareOperation(cfg)
	if err != nil {
		return fmt.Errorf("invalid comparison: %w", err)
	}

	// Create storage backends
	original, err := storage.NewLocal(operation.OriginalPath)
	if err != nil {
		return fmt.Errorf("original directory: %w", err)
	}
	defer original.Close()

	modified, err := storage.NewLocal(operation.ModifiedPath)
	if err != nil {
		return fmt.Errorf("modified directory: %w", err)
	}
	defer modified.Close()

	// Create logger
	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()
	logger = logger.WithFields(logging.Fields{"operation_id": operation.ID})

	// Create summary formatter
	formatter, err := output.NewFormatter(cfg.Output.Format)
	if err != nil {
		return err
	}
	if human, ok := formatter.(*output.HumanFormatter); ok {
		human.SetQuiet(cfg.Output.Quiet)
	}
	if err := formatter.Start(cmd.OutOrStdout(), operation); err != nil {
		return err
	}

	eng := engine.NewEngine(original, modified, operation, logger)
	eng.SetBufferSize(cfg.Performance.BufferSize)
	if cfg.Output.Progress {
		if bar := output.NewProgressBar(os.Stderr); bar.Enabled() {
			eng.SetProgressBar(bar)
		} else {
			logger.Debug(ctx, "Progress bar disabled: stderr is not a terminal", nil)
		}
	}

	report, err := eng.Run(ctx)
	if err != nil {
		// The summary still reports the failed status
		formatter.Error(err)
		if cerr := formatter.Complete(report); cerr != nil {
			logger.Warn(ctx, "Failed to write summary", logging.Fields{"error": cerr.Error()})
		}
		return &ExitError{
			Code: report.Status.ExitCode(),
			Err:  fmt.Errorf("comparison failed: %w", err),
		}
	}

	return formatter.Complete(report)
}

// ExitError carries the process exit code of a failed run
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
