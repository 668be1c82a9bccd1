package compare

import (
	"context"

	"github.com/sdejongh/dirdiff/internal/platform"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// ProgressFunc is called once per classified file
type ProgressFunc func(entry models.PlanEntry, done, total int)

// Reconciler classifies the union of two snapshots into a ComparisonPlan
type Reconciler struct {
	original   storage.Backend
	modified   storage.Backend
	comparator Comparator
	logger     logging.Logger
	progress   ProgressFunc
}

// NewReconciler creates a reconciler reading file content through the two backends
func NewReconciler(original, modified storage.Backend, comparator Comparator, logger logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Reconciler{
		original:   original,
		modified:   modified,
		comparator: comparator,
		logger:     logger,
	}
}

// SetProgressCallback sets the per-file progress callback
func (r *Reconciler) SetProgressCallback(fn ProgressFunc) {
	r.progress = fn
}

// Reconcile builds the plan. Paths present on one side only are classified
// without reading their content. A comparison failure becomes an ERROR entry;
// only cancellation aborts the run.
func (r *Reconciler) Reconcile(ctx context.Context, orig, mod *models.TreeSnapshot) (*models.ComparisonPlan, error) {
	paths := mergeSorted(orig.SortedFiles(), mod.SortedFiles())

	plan := &models.ComparisonPlan{
		Entries: make([]models.PlanEntry, 0, len(paths)),
		Mode:    r.comparator.Mode(),
	}
	plan.Skipped = append(plan.Skipped, orig.Skipped...)
	plan.Skipped = append(plan.Skipped, mod.Skipped...)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := r.classify(ctx, orig, mod, path)
		plan.Entries = append(plan.Entries, entry)

		if r.progress != nil {
			r.progress(entry, i+1, len(paths))
		}
	}

	for _, dir := range mergeSorted(orig.SortedDirs(), mod.SortedDirs()) {
		d := models.DirEntry{
			Path:    dir,
			Shallow: orig.IsShallow(dir) || mod.IsShallow(dir),
		}
		switch {
		case orig.HasDir(dir) && mod.HasDir(dir):
			d.Presence = models.DirBoth
		case orig.HasDir(dir):
			d.Presence = models.DirOriginal
		default:
			d.Presence = models.DirModified
		}
		plan.Dirs = append(plan.Dirs, d)
	}

	counts := plan.Counts()
	r.logger.Info(ctx, "Reconciliation complete", logging.Fields{
		"comparator": r.comparator.Name(),
		"new":        counts.New,
		"deleted":    counts.Deleted,
		"modified":   counts.Modified,
		"unchanged":  counts.Unchanged,
		"errors":     counts.Errored,
	})

	return plan, nil
}

func (r *Reconciler) classify(ctx context.Context, orig, mod *models.TreeSnapshot, path string) models.PlanEntry {
	inOrig, inMod := orig.HasFile(path), mod.HasFile(path)
	switch {
	case inOrig && !inMod:
		return models.PlanEntry{Path: path, Status: models.StatusDeleted}
	case !inOrig && inMod:
		return models.PlanEntry{Path: path, Status: models.StatusNew}
	}

	result, err := r.comparator.Compare(ctx, r.original, r.modified, path)
	if err != nil {
		r.logger.Warn(ctx, "Comparison failed", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return models.PlanEntry{Path: path, Status: models.StatusError, Err: err}
	}

	if result.Result == Same {
		return models.PlanEntry{Path: path, Status: models.StatusUnchanged}
	}
	r.logger.Debug(ctx, "File modified", logging.Fields{
		"path":   path,
		"reason": result.Reason,
	})
	return models.PlanEntry{Path: path, Status: models.StatusModified}
}

// mergeSorted merges two path lists ordered by platform.ComparePaths, keeping one copy of shared paths
func mergeSorted(a, b []string) []string {
	merged := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := platform.ComparePaths(a[i], b[j]); {
		case c < 0:
			merged = append(merged, a[i])
			i++
		case c > 0:
			merged = append(merged, b[j])
			j++
		default:
			merged = append(merged, a[i])
			i++
			j++
		}
	}
	merged = append(merged, a[i:]...)
	return append(merged, b[j:]...)
}
