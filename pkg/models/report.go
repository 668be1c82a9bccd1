package models

import (
	"time"
)

// RunReport represents the results of a comparison run
type RunReport struct {
	// Operation details
	OperationID  string
	OriginalPath string
	ModifiedPath string
	OutputPath   string
	Method       ReportMethod

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Stats Statistics

	// Per-path errors, in plan order
	Errors []PathError

	// Changed is set when any file is new, deleted or modified
	Changed bool
	Status  RunStatus
}

// Statistics holds comparison metrics
type Statistics struct {
	OriginalFiles int
	OriginalDirs  int
	ModifiedFiles int
	ModifiedDirs  int

	// Unique paths across both trees
	FilesCompared int
	DirsCompared  int

	FilesNew       int
	FilesDeleted   int
	FilesModified  int
	FilesUnchanged int
	FilesErrored   int

	DirsNew     int
	DirsDeleted int

	// Line totals over the rendered content; diff hunks in diff methods,
	// stored lines of BEFORE/AFTER and NEW sections in the tree method
	LinesAdded   int
	LinesRemoved int

	// Subtrees skipped because they could not be read
	SubtreesSkipped int

	BytesWritten int64
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusSuccess indicates the report was written without per-path errors
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates the report was written but contains inline errors
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates the run aborted
	StatusFailed RunStatus = "failed"
	// StatusCancelled indicates the run was interrupted
	StatusCancelled RunStatus = "cancelled"
)

// PathError represents a recoverable error on one path
type PathError struct {
	FilePath  string
	Error     string
	Timestamp time.Time
}

// ExitCode returns the process exit code for the run status.
// A report carrying inline errors is still a complete report.
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess, StatusPartial:
		return 0
	case StatusCancelled:
		return 130
	default:
		return 1
	}
}
