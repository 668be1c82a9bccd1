package output

import (
	"context"
	"io"

	"github.com/sdejongh/dirdiff/pkg/diff"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// UnifiedRenderer writes a (MODIFIED) banner followed by diff hunks for each
// modified file, and the full content of new and deleted files.
// With inline set, a modified file is written in full under (ORIGINAL) and
// its hunks follow under (CHANGES).
type UnifiedRenderer struct {
	opts   Options
	inline bool
}

// NewUnifiedRenderer creates the renderer for the "includes" method
func NewUnifiedRenderer(opts Options) *UnifiedRenderer {
	return &UnifiedRenderer{opts: opts}
}

// NewInlineRenderer creates the renderer for the "unified" method
func NewInlineRenderer(opts Options) *UnifiedRenderer {
	return &UnifiedRenderer{opts: opts, inline: true}
}

// Name returns the report method
func (r *UnifiedRenderer) Name() string {
	if r.inline {
		return string(models.MethodUnified)
	}
	return string(models.MethodIncludes)
}

// Render writes one section per changed file in plan order
func (r *UnifiedRenderer) Render(ctx context.Context, w io.Writer, plan *models.ComparisonPlan, src Sources) (*RenderResult, error) {
	ew := &errWriter{w: w}
	res := &RenderResult{}

	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		switch entry.Status {
		case models.StatusModified:
			r.renderModified(ctx, ew, res, src, entry.Path)
		case models.StatusNew:
			renderWhole(ctx, ew, res, src.Modified, entry.Path, BannerNew)
		case models.StatusDeleted:
			renderWhole(ctx, ew, res, src.Original, entry.Path, BannerDeleted)
		case models.StatusError:
			ew.pathError(res, entry.Path, entryError(entry))
		}

		if ew.err != nil {
			return res, ew.err
		}
	}

	return res, ew.err
}

func (r *UnifiedRenderer) renderModified(ctx context.Context, ew *errWriter, res *RenderResult, src Sources, path string) {
	orig, mod, err := readPair(ctx, src, path)
	if err != nil {
		ew.pathError(res, path, err)
		return
	}

	hunks, err := diff.Unified(orig.lines, mod.lines, r.opts.ContextLines)
	if err != nil {
		ew.pathError(res, path, err)
		return
	}
	stats := diff.Count(orig.lines, mod.lines)
	res.LinesAdded += stats.Added
	res.LinesRemoved += stats.Removed

	if r.inline {
		ew.banner(path, BannerOriginal)
		ew.write(orig.raw)
		ew.banner(path, BannerChanges)
	} else {
		ew.banner(path, BannerModified)
	}
	ew.write(hunks)
}

// renderWhole writes the full content of a one-sided file under banner
func renderWhole(ctx context.Context, ew *errWriter, res *RenderResult, b storage.Backend, path, banner string) {
	text, err := readText(ctx, b, path)
	if err != nil {
		ew.pathError(res, path, err)
		return
	}
	if banner == BannerNew {
		res.LinesAdded += len(text.lines)
	} else {
		res.LinesRemoved += len(text.lines)
	}
	ew.banner(path, banner)
	ew.write(text.raw)
}
