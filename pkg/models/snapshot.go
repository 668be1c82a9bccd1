package models

import (
	"sort"

	"github.com/sdejongh/dirdiff/internal/platform"
)

// SkippedPath records a subtree the enumerator could not read
type SkippedPath struct {
	Path  string
	Error string
}

// TreeSnapshot is the visible content of one comparison root.
// Paths are slash-separated and relative to Root.
type TreeSnapshot struct {
	// Root is the absolute path the snapshot was taken from
	Root string
	// Files holds every visible regular file
	Files map[string]struct{}
	// Dirs holds every visited directory, including shallow-ignored ones
	Dirs map[string]struct{}
	// Shallow holds the directories that were listed but not descended
	Shallow map[string]struct{}
	// Skipped lists unreadable subtrees (non-fatal)
	Skipped []SkippedPath
}

// NewTreeSnapshot creates an empty snapshot for root
func NewTreeSnapshot(root string) *TreeSnapshot {
	return &TreeSnapshot{
		Root:    root,
		Files:   make(map[string]struct{}),
		Dirs:    make(map[string]struct{}),
		Shallow: make(map[string]struct{}),
	}
}

// AddFile records a visible file
func (s *TreeSnapshot) AddFile(path string) {
	s.Files[path] = struct{}{}
}

// AddDir records a visited directory
func (s *TreeSnapshot) AddDir(path string, shallow bool) {
	s.Dirs[path] = struct{}{}
	if shallow {
		s.Shallow[path] = struct{}{}
	}
}

// HasFile reports whether path is a visible file
func (s *TreeSnapshot) HasFile(path string) bool {
	_, ok := s.Files[path]
	return ok
}

// HasDir reports whether path is a visited directory
func (s *TreeSnapshot) HasDir(path string) bool {
	_, ok := s.Dirs[path]
	return ok
}

// IsShallow reports whether path was listed without being descended
func (s *TreeSnapshot) IsShallow(path string) bool {
	_, ok := s.Shallow[path]
	return ok
}

// SortedFiles returns the files ordered by component sequence
func (s *TreeSnapshot) SortedFiles() []string {
	return sortedKeys(s.Files)
}

// SortedDirs returns the directories ordered by component sequence
func (s *TreeSnapshot) SortedDirs() []string {
	return sortedKeys(s.Dirs)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return platform.ComparePaths(keys[i], keys[j]) < 0
	})
	return keys
}
