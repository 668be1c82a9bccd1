package config

import (
	"github.com/sdejongh/dirdiff/pkg/diff"
	"github.com/sdejongh/dirdiff/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Filter      FilterConfig      `yaml:"filter"`
	Report      ReportConfig      `yaml:"report"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// FilterConfig holds the path filter settings
type FilterConfig struct {
	Ignore        []string `yaml:"ignore"`
	ShallowIgnore []string `yaml:"shallow_ignore"`
	Include       []string `yaml:"include"`
	MaxDepth      *int     `yaml:"max_depth,omitempty"` // nil = unlimited
}

// ReportConfig holds report rendering settings
type ReportConfig struct {
	Method         models.ReportMethod `yaml:"method"`
	ContextLines   int                 `yaml:"context_lines"`
	TagDirectories bool                `yaml:"tag_directories"` // tag directories present on one side only
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	Strategy       models.ScanStrategy `yaml:"strategy"`
	ConcurrentScan bool                `yaml:"concurrent_scan"`
	BufferSize     int                 `yaml:"buffer_size"`
}

// OutputConfig holds run summary settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bar
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = no file)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Filter: FilterConfig{},
		Report: ReportConfig{
			Method:         models.MethodGeneral,
			ContextLines:   diff.DefaultContext,
			TagDirectories: true,
		},
		Performance: PerformanceConfig{
			Strategy:       models.StrategyWalk,
			ConcurrentScan: true,
			BufferSize:     65536,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: false,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
	}
}

// IgnoreSpec builds the filter spec from the configuration
func (c *Config) IgnoreSpec() models.IgnoreSpec {
	spec := models.IgnoreSpec{
		IgnorePatterns: append([]string(nil), c.Filter.Ignore...),
		ShallowIgnore:  append([]string(nil), c.Filter.ShallowIgnore...),
		IncludeOnly:    append([]string(nil), c.Filter.Include...),
	}
	if c.Filter.MaxDepth != nil {
		spec.MaxDepth = models.IntPtr(*c.Filter.MaxDepth)
	}
	return spec
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	spec := c.IgnoreSpec()
	if err := spec.Validate(); err != nil {
		return err
	}

	if !c.Report.Method.IsValid() {
		return &models.ValidationError{
			Field:   "report.method",
			Message: "must be 'general', 'unified', or 'includes'",
		}
	}

	if c.Report.ContextLines < 0 {
		return &models.ValidationError{
			Field:   "report.context_lines",
			Message: "must not be negative",
		}
	}

	if !c.Performance.Strategy.IsValid() {
		return &models.ValidationError{
			Field:   "performance.strategy",
			Message: "must be 'walk' or 'bfs'",
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
