package output

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/sdejongh/dirdiff/internal/platform"
	"github.com/sdejongh/dirdiff/pkg/diff"
	"github.com/sdejongh/dirdiff/pkg/models"
)

// TreeRoot is the first line of a tree report
const TreeRoot = "/repository-root"

// Tree tags
const (
	TagNew             = "[NEW]"
	TagDeleted         = "[DELETED]"
	TagModified        = "[MODIFIED]"
	TagError           = "[ERROR]"
	TagContentsIgnored = "[CONTENTS IGNORED]"
	TagUnreadable      = "[UNREADABLE]"
)

// TreeRenderer writes the directory tree of both snapshots with status tags,
// then the content of modified files (BEFORE/AFTER) and new files.
type TreeRenderer struct {
	opts Options
}

// NewTreeRenderer creates the renderer for the "general" method
func NewTreeRenderer(opts Options) *TreeRenderer {
	return &TreeRenderer{opts: opts}
}

// Name returns the report method
func (r *TreeRenderer) Name() string {
	return string(models.MethodGeneral)
}

type treeNode struct {
	name     string
	dir      bool
	tags     []string
	children []*treeNode
	index    map[string]*treeNode
}

func newTreeNode(name string, dir bool) *treeNode {
	n := &treeNode{name: name, dir: dir}
	if dir {
		n.index = make(map[string]*treeNode)
	}
	return n
}

func (n *treeNode) child(name string, dir bool) *treeNode {
	key := name
	if dir {
		key += "/"
	}
	if c, ok := n.index[key]; ok {
		return c
	}
	c := newTreeNode(name, dir)
	n.index[key] = c
	n.children = append(n.children, c)
	return c
}

// ensureDir returns the node for a directory path, creating missing ancestors
func (n *treeNode) ensureDir(path string) *treeNode {
	node := n
	for _, part := range platform.Components(path) {
		node = node.child(part, true)
	}
	return node
}

func (n *treeNode) label() string {
	label := n.name
	if n.dir {
		label += "/"
	}
	if len(n.tags) > 0 {
		label += " " + strings.Join(n.tags, " ")
	}
	return label
}

// buildTree merges the plan's directories and files into one tree
func (r *TreeRenderer) buildTree(plan *models.ComparisonPlan) *treeNode {
	root := newTreeNode("", true)

	skipped := make(map[string]struct{}, len(plan.Skipped))
	for _, s := range plan.Skipped {
		skipped[s.Path] = struct{}{}
	}

	for _, d := range plan.Dirs {
		node := root.ensureDir(d.Path)
		if r.opts.TagDirectories {
			switch d.Presence {
			case models.DirModified:
				node.tags = append(node.tags, TagNew)
			case models.DirOriginal:
				node.tags = append(node.tags, TagDeleted)
			}
		}
		if d.Shallow {
			node.tags = append(node.tags, TagContentsIgnored)
		}
		if _, ok := skipped[d.Path]; ok {
			node.tags = append(node.tags, TagUnreadable)
		}
	}

	for _, e := range plan.Entries {
		parent := root.ensureDir(platform.Parent(e.Path))
		leaf := parent.child(platform.Base(e.Path), false)
		switch e.Status {
		case models.StatusNew:
			leaf.tags = append(leaf.tags, TagNew)
		case models.StatusDeleted:
			leaf.tags = append(leaf.tags, TagDeleted)
		case models.StatusModified:
			leaf.tags = append(leaf.tags, TagModified)
		case models.StatusError:
			leaf.tags = append(leaf.tags, TagError)
		}
	}

	return root
}

func writeTree(ew *errWriter, node *treeNode, prefix string) {
	sort.SliceStable(node.children, func(i, j int) bool {
		return node.children[i].name < node.children[j].name
	})

	for i, c := range node.children {
		connector, indent := "├── ", "│   "
		if i == len(node.children)-1 {
			connector, indent = "└── ", "    "
		}
		ew.printf("%s%s%s\n", prefix, connector, c.label())
		if c.dir {
			writeTree(ew, c, prefix+indent)
		}
	}
}

// Render writes the tree followed by the content section
func (r *TreeRenderer) Render(ctx context.Context, w io.Writer, plan *models.ComparisonPlan, src Sources) (*RenderResult, error) {
	ew := &errWriter{w: w}
	res := &RenderResult{}

	ew.printf("%s\n", TreeRoot)
	writeTree(ew, r.buildTree(plan), "")
	ew.write("\n")

	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		switch entry.Status {
		case models.StatusModified:
			orig, mod, err := readPair(ctx, src, entry.Path)
			if err != nil {
				ew.pathError(res, entry.Path, err)
				break
			}
			// byte-level change, so count on the stored lines
			stats := diff.Count(diff.SplitLines(orig.raw), diff.SplitLines(mod.raw))
			res.LinesAdded += stats.Added
			res.LinesRemoved += stats.Removed

			ew.banner(entry.Path, BannerBefore)
			ew.write(orig.raw)
			ew.banner(entry.Path, BannerAfter)
			ew.write(mod.raw)
		case models.StatusNew:
			renderWhole(ctx, ew, res, src.Modified, entry.Path, BannerNew)
		case models.StatusError:
			ew.pathError(res, entry.Path, entryError(entry))
		}

		if ew.err != nil {
			return res, ew.err
		}
	}

	return res, ew.err
}
