package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/dirdiff/internal/platform"
	"github.com/sdejongh/dirdiff/pkg/config"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
)

// validateCompareFlags checks the positional paths before any work starts
func validateCompareFlags() error {
	for _, root := range []struct {
		name string
		path string
	}{
		{"original", compareFlags.Original},
		{"modified", compareFlags.Modified},
	} {
		if err := platform.ValidatePath(root.path); err != nil {
			return fmt.Errorf("invalid %s path: %w", root.name, err)
		}
		info, err := os.Stat(root.path)
		if os.IsNotExist(err) {
			return fmt.Errorf("%s directory does not exist: %s", root.name, root.path)
		} else if err != nil {
			return fmt.Errorf("failed to access %s directory: %w", root.name, err)
		} else if !info.IsDir() {
			return fmt.Errorf("%s path is not a directory: %s", root.name, root.path)
		}
	}

	if compareFlags.MaxDepth < -1 {
		return &models.ValidationError{
			Field:   "max-depth",
			Message: fmt.Sprintf("must be -1 (unlimited) or zero or positive, got %d", compareFlags.MaxDepth),
		}
	}

	if err := platform.ValidatePath(compareFlags.Output); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if info, err := os.Stat(compareFlags.Output); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", compareFlags.Output)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	// Filter
	if flags.Changed("ignore") {
		cfg.Filter.Ignore = compareFlags.Ignore
	}
	if flags.Changed("shallow-ignore") {
		cfg.Filter.ShallowIgnore = compareFlags.ShallowIgnore
	}
	if flags.Changed("include") {
		cfg.Filter.Include = compareFlags.Include
	}
	if flags.Changed("max-depth") {
		if compareFlags.MaxDepth < 0 {
			cfg.Filter.MaxDepth = nil
		} else {
			cfg.Filter.MaxDepth = models.IntPtr(compareFlags.MaxDepth)
		}
	}

	// Report
	if compareFlags.Method != "" {
		cfg.Report.Method = models.ReportMethod(compareFlags.Method)
	}
	if flags.Changed("context") {
		cfg.Report.ContextLines = compareFlags.Context
	}
	if flags.Changed("tag-dirs") {
		cfg.Report.TagDirectories = compareFlags.TagDirs
	}

	// Performance
	if compareFlags.Strategy != "" {
		cfg.Performance.Strategy = models.ScanStrategy(compareFlags.Strategy)
	}

	// Output
	if compareFlags.Format != "" {
		cfg.Output.Format = compareFlags.Format
	}
	if flags.Changed("progress") {
		cfg.Output.Progress = compareFlags.Progress
	}

	// Logging
	if compareFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = compareFlags.LogFile
	}
	if compareFlags.LogFormat != "" {
		cfg.Logging.Format = compareFlags.LogFormat
	}
	if compareFlags.LogLevel != "" {
		cfg.Logging.Level = compareFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	if globalFlags.Verbose && compareFlags.LogLevel == "" {
		cfg.Logging.Level = "debug"
	}
}

// createCompareOperation creates a comparison operation from configuration
func createCompareOperation(cfg *config.Config) (*models.CompareOperation, error) {
	operation := &models.CompareOperation{
		ID:             uuid.New().String(),
		OriginalPath:   compareFlags.Original,
		ModifiedPath:   compareFlags.Modified,
		OutputPath:     compareFlags.Output,
		Method:         cfg.Report.Method,
		Strategy:       cfg.Performance.Strategy,
		Spec:           cfg.IgnoreSpec(),
		ContextLines:   cfg.Report.ContextLines,
		TagDirectories: cfg.Report.TagDirectories,
		ConcurrentScan: cfg.Performance.ConcurrentScan,
		CreatedAt:      time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// createLogger creates a logger based on configuration.
// A log file takes precedence; --verbose without a file logs to stderr.
func createLogger(cfg *config.Config) (logging.Logger, error) {
	format := logging.ParseFormat(cfg.Logging.Format)
	level := logging.ParseLevel(cfg.Logging.Level)

	if cfg.Logging.Enabled && cfg.Logging.File != "" {
		return logging.NewFileLogger(logging.FileLoggerConfig{
			Path:       cfg.Logging.File,
			Format:     format,
			Level:      level,
			MaxSize:    10 * 1024 * 1024, // 10 MB
			MaxBackups: 5,
		})
	}

	if globalFlags.Verbose && !globalFlags.Quiet {
		return logging.NewWriterLogger(os.Stderr, format, level), nil
	}

	return logging.NewNullLogger(), nil
}
