package scan

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sdejongh/dirdiff/pkg/filter"
	"github.com/sdejongh/dirdiff/pkg/logging"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// Enumerator produces TreeSnapshots for one filter and strategy
type Enumerator struct {
	filter   *filter.Filter
	strategy models.ScanStrategy
	logger   logging.Logger
}

// New creates an enumerator. A nil logger discards output.
func New(f *filter.Filter, strategy models.ScanStrategy, logger logging.Logger) *Enumerator {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if strategy == "" {
		strategy = models.StrategyWalk
	}
	return &Enumerator{filter: f, strategy: strategy, logger: logger}
}

// Enumerate lists backend's tree. An unreadable subdirectory is recorded in
// the snapshot's Skipped list; an unreadable root is returned as an error.
func (e *Enumerator) Enumerate(ctx context.Context, backend storage.Backend) (*models.TreeSnapshot, error) {
	snap := models.NewTreeSnapshot(backend.Root())

	var err error
	switch e.strategy {
	case models.StrategyWalk:
		err = e.walk(ctx, backend, snap)
	case models.StrategyBFS:
		err = e.bfs(ctx, backend, snap)
	default:
		return nil, fmt.Errorf("unknown scan strategy: %s", e.strategy)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", backend.Root(), err)
	}

	for _, skipped := range snap.Skipped {
		e.logger.Warn(ctx, "Skipped unreadable directory", logging.Fields{
			"root":  backend.Root(),
			"path":  skipped.Path,
			"error": skipped.Error,
		})
	}
	e.logger.Debug(ctx, "Enumeration complete", logging.Fields{
		"root":     backend.Root(),
		"strategy": string(e.strategy),
		"files":    len(snap.Files),
		"dirs":     len(snap.Dirs),
	})

	return snap, nil
}

// visitFile adds rel to the snapshot if the filter includes it
func (e *Enumerator) visitFile(snap *models.TreeSnapshot, rel string) {
	if e.filter.Decide(rel) == models.DecisionInclude {
		snap.AddFile(rel)
	}
}

// visitDir records rel and reports whether its children should be read
func (e *Enumerator) visitDir(snap *models.TreeSnapshot, rel string) bool {
	if list, shallow := e.filter.ListDir(rel); list {
		snap.AddDir(rel, shallow)
	}
	return e.filter.Descend(rel)
}

func (e *Enumerator) walk(ctx context.Context, backend storage.Backend, snap *models.TreeSnapshot) error {
	return backend.Walk(ctx, "", func(info storage.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			snap.Skipped = append(snap.Skipped, models.SkippedPath{Path: info.RelativePath, Error: err.Error()})
			return storage.SkipDir
		}

		if !info.IsDir {
			e.visitFile(snap, info.RelativePath)
			return nil
		}
		if !e.visitDir(snap, info.RelativePath) {
			return storage.SkipDir
		}
		return nil
	})
}

func (e *Enumerator) bfs(ctx context.Context, backend storage.Backend, snap *models.TreeSnapshot) error {
	entries, err := backend.ReadDir(ctx, "")
	if err != nil {
		return err
	}

	queue := []storage.FileInfo{}
	for {
		for _, entry := range entries {
			if entry.IsDir {
				if e.visitDir(snap, entry.RelativePath) {
					queue = append(queue, entry)
				}
				continue
			}
			e.visitFile(snap, entry.RelativePath)
		}

		if len(queue) == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := queue[0]
		queue = queue[1:]
		entries, err = backend.ReadDir(ctx, dir.RelativePath)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			snap.Skipped = append(snap.Skipped, models.SkippedPath{Path: dir.RelativePath, Error: err.Error()})
			entries = nil
		}
	}
}

// EnumeratePair scans both roots, concurrently when concurrent is set.
// Both snapshots are complete before it returns.
func (e *Enumerator) EnumeratePair(ctx context.Context, original, modified storage.Backend, concurrent bool) (*models.TreeSnapshot, *models.TreeSnapshot, error) {
	var orig, mod *models.TreeSnapshot

	if !concurrent {
		var err error
		if orig, err = e.Enumerate(ctx, original); err != nil {
			return nil, nil, err
		}
		if mod, err = e.Enumerate(ctx, modified); err != nil {
			return nil, nil, err
		}
		return orig, mod, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orig, err = e.Enumerate(gctx, original)
		return err
	})
	g.Go(func() error {
		var err error
		mod, err = e.Enumerate(gctx, modified)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return orig, mod, nil
}
