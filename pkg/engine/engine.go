package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/filter"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/output"
	"github.com/sdejongh/dirdiff/pkg/scan"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// Engine orchestrates one comparison run: enumerate both roots,
// reconcile the snapshots, then render the report
type Engine struct {
	original   storage.Backend
	modified   storage.Backend
	operation  *models.CompareOperation
	bufferSize int
	progress   *output.ProgressBar
	logger     logging.Logger
}

// Result holds the snapshots and plan of a comparison
type Result struct {
	Original *models.TreeSnapshot
	Modified *models.TreeSnapshot
	Plan     *models.ComparisonPlan
}

// NewEngine creates a new comparison engine
func NewEngine(original, modified storage.Backend, operation *models.CompareOperation, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		original:   original,
		modified:   modified,
		operation:  operation,
		bufferSize: compare.DefaultBufferSize,
		logger:     logger,
	}
}

// SetProgressBar enables the reconciliation progress bar
func (e *Engine) SetProgressBar(bar *output.ProgressBar) {
	e.progress = bar
}

// SetBufferSize sets the read buffer used for byte comparison
func (e *Engine) SetBufferSize(size int) {
	e.bufferSize = size
}

// Compare enumerates both trees and builds the comparison plan.
// Nothing is written; any error returned is fatal to the run.
func (e *Engine) Compare(ctx context.Context) (*Result, error) {
	op := e.operation

	f, err := filter.New(op.Spec)
	if err != nil {
		return nil, err
	}

	enumerator := scan.New(f, op.Strategy, e.logger)
	orig, mod, err := enumerator.EnumeratePair(ctx, e.original, e.modified, op.ConcurrentScan)
	if err != nil {
		return nil, err
	}

	comparator := compare.ForMode(op.Method.ContentMode(), e.bufferSize)
	reconciler := compare.NewReconciler(e.original, e.modified, comparator, e.logger)

	if e.progress != nil {
		defer e.progress.Finish()
		reconciler.SetProgressCallback(func(entry models.PlanEntry, done, total int) {
			if done == 1 {
				e.progress.Start(total)
			}
			e.progress.Increment()
		})
	}

	plan, err := reconciler.Reconcile(ctx, orig, mod)
	if err != nil {
		return nil, err
	}

	if err := plan.Errors(); err != nil {
		e.logger.Warn(ctx, "Some files could not be compared", logging.Fields{
			"errors": err.Error(),
		})
	}

	return &Result{Original: orig, Modified: mod, Plan: plan}, nil
}

// Render writes the report for result to w
func (e *Engine) Render(ctx context.Context, w io.Writer, result *Result) (*output.RenderResult, error) {
	renderer, err := output.NewRenderer(e.operation.Method, output.Options{
		ContextLines:   e.operation.ContextLines,
		TagDirectories: e.operation.TagDirectories,
	})
	if err != nil {
		return nil, err
	}

	return renderer.Render(ctx, w, result.Plan, output.Sources{
		Original: e.original,
		Modified: e.modified,
	})
}

// Run compares both trees and writes the report to the operation's output path.
// The output file is only created once the plan is complete.
func (e *Engine) Run(ctx context.Context) (*models.RunReport, error) {
	op := e.operation
	report := &models.RunReport{
		OperationID:  op.ID,
		OriginalPath: op.OriginalPath,
		ModifiedPath: op.ModifiedPath,
		OutputPath:   op.OutputPath,
		Method:       op.Method,
		StartTime:    time.Now(),
	}
	started := report.StartTime
	op.StartedAt = &started

	e.logger.Info(ctx, "Starting comparison", logging.Fields{
		"original": op.OriginalPath,
		"modified": op.ModifiedPath,
		"method":   string(op.Method),
		"strategy": string(op.Strategy),
	})

	result, err := e.Compare(ctx)
	if err != nil {
		return e.fail(ctx, report, err)
	}

	file, err := os.Create(op.OutputPath)
	if err != nil {
		return e.fail(ctx, report, fmt.Errorf("failed to create output file: %w", err))
	}

	cw := &countingWriter{w: file}
	bw := bufio.NewWriter(cw)
	rendered, renderErr := e.Render(ctx, bw, result)
	if renderErr == nil {
		renderErr = bw.Flush()
	}
	if closeErr := file.Close(); renderErr == nil && closeErr != nil {
		renderErr = closeErr
	}
	if renderErr != nil {
		return e.fail(ctx, report, fmt.Errorf("failed to write report: %w", renderErr))
	}

	fillStats(&report.Stats, result)
	report.Stats.LinesAdded = rendered.LinesAdded
	report.Stats.LinesRemoved = rendered.LinesRemoved
	report.Stats.BytesWritten = cw.n

	for _, skipped := range result.Plan.Skipped {
		report.Errors = append(report.Errors, models.PathError{
			FilePath:  skipped.Path,
			Error:     skipped.Error,
			Timestamp: report.StartTime,
		})
	}
	report.Errors = append(report.Errors, rendered.Errors...)

	report.Changed = result.Plan.HasChanges()
	report.Status = models.StatusSuccess
	if len(report.Errors) > 0 {
		report.Status = models.StatusPartial
	}
	e.finish(report)

	e.logger.Info(ctx, "Comparison complete", logging.Fields{
		"status":        string(report.Status),
		"changed":       report.Changed,
		"duration_ms":   report.Duration.Milliseconds(),
		"bytes_written": report.Stats.BytesWritten,
	})

	return report, nil
}

func (e *Engine) fail(ctx context.Context, report *models.RunReport, err error) (*models.RunReport, error) {
	report.Status = models.StatusFailed
	if errors.Is(err, context.Canceled) {
		report.Status = models.StatusCancelled
	}
	e.finish(report)
	e.logger.Error(ctx, "Comparison failed", err, logging.Fields{
		"status": string(report.Status),
	})
	return report, err
}

func (e *Engine) finish(report *models.RunReport) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	completed := report.EndTime
	e.operation.CompletedAt = &completed
}

// fillStats derives the run statistics from the snapshots and plan
func fillStats(stats *models.Statistics, result *Result) {
	stats.OriginalFiles = len(result.Original.Files)
	stats.OriginalDirs = len(result.Original.Dirs)
	stats.ModifiedFiles = len(result.Modified.Files)
	stats.ModifiedDirs = len(result.Modified.Dirs)

	plan := result.Plan
	counts := plan.Counts()
	stats.FilesCompared = len(plan.Entries)
	stats.FilesNew = counts.New
	stats.FilesDeleted = counts.Deleted
	stats.FilesModified = counts.Modified
	stats.FilesUnchanged = counts.Unchanged
	stats.FilesErrored = counts.Errored

	stats.DirsCompared = len(plan.Dirs)
	for _, d := range plan.Dirs {
		switch d.Presence {
		case models.DirModified:
			stats.DirsNew++
		case models.DirOriginal:
			stats.DirsDeleted++
		}
	}
	stats.SubtreesSkipped = len(plan.Skipped)
}

// countingWriter counts bytes written through it
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
