package output

import (
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/dirdiff/pkg/models"
)

// HumanFormatter formats the run summary in human-readable format
type HumanFormatter struct {
	writer io.Writer
	quiet  bool
	errors []string
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// SetQuiet limits output to the final status line
func (f *HumanFormatter) SetQuiet(quiet bool) {
	f.quiet = quiet
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, op *models.CompareOperation) error {
	f.writer = writer
	if writer == nil || f.quiet {
		return nil
	}

	_, err := fmt.Fprintf(writer, "Comparing %s -> %s (method: %s)\n",
		op.OriginalPath, op.ModifiedPath, op.Method)
	return err
}

// Complete displays the summary
func (f *HumanFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}
	ew := &errWriter{w: f.writer}
	s := report.Stats

	if failed(report.Status) {
		if !f.quiet {
			ew.printf("\nComparison %s after %s\n", report.Status, report.Duration.Round(time.Millisecond))
		}
		ew.printf("Status: %s\n", report.Status)
		for _, msg := range f.errors {
			ew.printf("  %s\n", msg)
		}
		return ew.err
	}

	if f.quiet {
		if !report.Changed {
			ew.printf("%s: no changes\n", report.Status)
			return ew.err
		}
		ew.printf("%s: %d new, %d deleted, %d modified\n", report.Status, s.FilesNew, s.FilesDeleted, s.FilesModified)
		return ew.err
	}

	ew.printf("\n")
	ew.printf("Comparison completed in %s\n", report.Duration.Round(time.Millisecond))
	ew.printf("Report written to %s (%s)\n", report.OutputPath, formatBytes(s.BytesWritten))
	ew.printf("\n")
	ew.printf("Summary:\n")
	ew.printf("  Scanned:\n")
	ew.printf("    Original:       %d files, %d dirs\n", s.OriginalFiles, s.OriginalDirs)
	ew.printf("    Modified:       %d files, %d dirs\n", s.ModifiedFiles, s.ModifiedDirs)
	ew.printf("    Unique paths:   %d files, %d dirs\n", s.FilesCompared, s.DirsCompared)
	if s.SubtreesSkipped > 0 {
		ew.printf("    Unreadable:     %d dirs\n", s.SubtreesSkipped)
	}
	ew.printf("\n")
	ew.printf("  Files:\n")
	ew.printf("    New:            %d\n", s.FilesNew)
	ew.printf("    Deleted:        %d\n", s.FilesDeleted)
	ew.printf("    Modified:       %d\n", s.FilesModified)
	ew.printf("    Unchanged:      %d\n", s.FilesUnchanged)
	ew.printf("    Errored:        %d\n", s.FilesErrored)
	ew.printf("\n")
	ew.printf("  Directories:\n")
	ew.printf("    New:            %d\n", s.DirsNew)
	ew.printf("    Deleted:        %d\n", s.DirsDeleted)
	if s.LinesAdded > 0 || s.LinesRemoved > 0 {
		ew.printf("\n")
		ew.printf("  Lines:            +%d -%d\n", s.LinesAdded, s.LinesRemoved)
	}
	ew.printf("\n")
	if report.Changed {
		ew.printf("Status: %s\n", report.Status)
	} else {
		ew.printf("Status: %s (no changes)\n", report.Status)
	}

	if len(report.Errors) > 0 || len(f.errors) > 0 {
		ew.printf("\nErrors:\n")
		for _, err := range report.Errors {
			ew.printf("  %s: %s\n", err.FilePath, err.Error)
		}
		for _, msg := range f.errors {
			ew.printf("  %s\n", msg)
		}
	}

	return ew.err
}

// Error records an error for the summary written by Complete
func (f *HumanFormatter) Error(err error) error {
	f.errors = append(f.errors, err.Error())
	return nil
}

// failed reports whether status means no report was written
func failed(status models.RunStatus) bool {
	return status == models.StatusFailed || status == models.StatusCancelled
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
