package filter

import (
	"strings"

	"github.com/sdejongh/dirdiff/internal/platform"
	"github.com/sdejongh/dirdiff/pkg/models"
)

// Filter applies an IgnoreSpec to relative paths.
// It holds the compiled form of the ignore spec's patterns and is safe for concurrent use.
type Filter struct {
	depth    int // -1 = unlimited
	shallow  map[string]struct{}
	matchers []*matcher
	include  []string
}

// New compiles spec into a Filter
func New(spec models.IgnoreSpec) (*Filter, error) {
	f := &Filter{
		depth:   spec.DepthLimit(),
		shallow: make(map[string]struct{}, len(spec.ShallowIgnore)),
	}

	for _, name := range spec.ShallowIgnore {
		f.shallow[strings.TrimSuffix(name, "/")] = struct{}{}
	}

	for _, pattern := range spec.IgnorePatterns {
		m, err := compileMatcher(pattern)
		if err != nil {
			return nil, &models.ValidationError{Field: "IgnorePatterns", Message: err.Error()}
		}
		f.matchers = append(f.matchers, m)
	}

	for _, prefix := range spec.IncludeOnly {
		f.include = append(f.include, strings.ReplaceAll(prefix, "\\", "/"))
	}

	return f, nil
}

// MustNew is like New but panics on an invalid pattern
func MustNew(spec models.IgnoreSpec) *Filter {
	f, err := New(spec)
	if err != nil {
		panic(err)
	}
	return f
}

// Decide is a convenience wrapper compiling spec for a single decision
func Decide(path string, spec *models.IgnoreSpec) models.FilterDecision {
	f, err := New(*spec)
	if err != nil {
		return models.DecisionFullIgnore
	}
	return f.Decide(path)
}

// Decide classifies a slash-separated relative path
func (f *Filter) Decide(path string) models.FilterDecision {
	parts := platform.Components(path)
	if len(parts) == 0 {
		return models.DecisionInclude
	}

	// Only the first component is checked: a nested directory with a
	// shallow-ignored name is treated like any other directory.
	if _, ok := f.shallow[parts[0]]; ok {
		return models.DecisionShallowIgnore
	}

	for _, m := range f.matchers {
		if m.matchPath(parts) {
			return models.DecisionFullIgnore
		}
	}

	if len(f.include) > 0 && !f.hasIncludePrefix(strings.Join(parts, "/")) {
		return models.DecisionFullIgnore
	}

	if f.depth >= 0 && len(parts) > f.depth {
		return models.DecisionFullIgnore
	}

	return models.DecisionInclude
}

// Descend reports whether the enumerator should walk into directory dir.
// Unlike Decide, a directory that is an ancestor of an include prefix is
// walked, and directories at the depth bound are not walked since none of
// their children could be visible.
func (f *Filter) Descend(dir string) bool {
	parts := platform.Components(dir)
	if len(parts) == 0 {
		return true
	}

	if _, ok := f.shallow[parts[0]]; ok {
		return false
	}

	for _, m := range f.matchers {
		if m.matchPath(parts) {
			return false
		}
	}

	if f.depth >= 0 && len(parts) >= f.depth {
		return false
	}

	if len(f.include) == 0 {
		return true
	}

	rel := strings.Join(parts, "/")
	if f.hasIncludePrefix(rel) {
		return true
	}
	for _, prefix := range f.include {
		if strings.HasPrefix(prefix, rel+"/") {
			return true
		}
	}
	return false
}

// ListDir reports whether directory dir should appear in the snapshot's
// directory set, and whether it is shallow-ignored.
func (f *Filter) ListDir(dir string) (list bool, shallow bool) {
	switch f.Decide(dir) {
	case models.DecisionShallowIgnore:
		// Only the top-level directory itself is listed
		return platform.Depth(dir) == 1, true
	case models.DecisionInclude:
		return true, false
	}
	return f.Descend(dir), false
}

func (f *Filter) hasIncludePrefix(rel string) bool {
	for _, prefix := range f.include {
		if strings.HasPrefix(rel, prefix) {
			return true
		}
	}
	return false
}
