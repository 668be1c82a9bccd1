package output

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/dirdiff/pkg/compare"
	"github.com/sdejongh/dirdiff/pkg/diff"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// Banners identifying the section of a path in the report
const (
	BannerNew      = "NEW"
	BannerDeleted  = "DELETED"
	BannerModified = "MODIFIED"
	BannerBefore   = "BEFORE"
	BannerAfter    = "AFTER"
	BannerOriginal = "ORIGINAL"
	BannerChanges  = "CHANGES"
)

// Sources gives renderers read access to both trees
type Sources struct {
	Original storage.Backend
	Modified storage.Backend
}

// Options configures a renderer
type Options struct {
	// ContextLines is the number of unchanged lines around each hunk
	ContextLines int
	// TagDirectories marks directories present on one side only
	TagDirectories bool
}

// DefaultOptions returns the default renderer options
func DefaultOptions() Options {
	return Options{
		ContextLines:   diff.DefaultContext,
		TagDirectories: true,
	}
}

// RenderResult summarizes what a renderer wrote
type RenderResult struct {
	LinesAdded   int
	LinesRemoved int
	// Errors lists the paths written as inline errors
	Errors []models.PathError
}

// Renderer writes a report for a plan
type Renderer interface {
	// Render writes the report to w. Per-path read failures are written
	// inline and collected in the result; only write failures and
	// cancellation are returned as errors.
	Render(ctx context.Context, w io.Writer, plan *models.ComparisonPlan, src Sources) (*RenderResult, error)

	// Name returns the report method the renderer implements
	Name() string
}

// NewRenderer returns the renderer for method
func NewRenderer(method models.ReportMethod, opts Options) (Renderer, error) {
	switch method {
	case models.MethodGeneral:
		return NewTreeRenderer(opts), nil
	case models.MethodIncludes:
		return NewUnifiedRenderer(opts), nil
	case models.MethodUnified:
		return NewInlineRenderer(opts), nil
	default:
		return nil, fmt.Errorf("unknown report method: %s", method)
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) write(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (ew *errWriter) banner(path, banner string) {
	ew.printf("\n------- %s (%s) -------\n", path, banner)
}

// pathError writes the inline diagnostic for path and records it in res
func (ew *errWriter) pathError(res *RenderResult, path string, err error) {
	ew.printf("\nError processing %s: %s\n", path, err)
	res.Errors = append(res.Errors, models.PathError{
		FilePath:  path,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}

// entryError returns the error to report for an ERROR entry
func entryError(entry models.PlanEntry) error {
	if entry.Err != nil {
		return entry.Err
	}
	return fmt.Errorf("comparison failed")
}

// fileText is one side of a path: the text as stored and its comparison lines
type fileText struct {
	raw   string
	lines []string
}

func readText(ctx context.Context, b storage.Backend, path string) (fileText, error) {
	raw, err := storage.ReadText(ctx, b, path)
	if err != nil {
		return fileText{}, err
	}
	return fileText{raw: raw, lines: compare.SplitText(raw)}, nil
}

// readPair reads path from both trees
func readPair(ctx context.Context, src Sources, path string) (orig, mod fileText, err error) {
	if orig, err = readText(ctx, src.Original, path); err != nil {
		return orig, mod, err
	}
	mod, err = readText(ctx, src.Modified, path)
	return orig, mod, err
}
