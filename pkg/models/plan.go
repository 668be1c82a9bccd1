package models

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// EntryStatus classifies one relative path of the comparison
type EntryStatus string

const (
	// StatusNew indicates the file exists only in the modified tree
	StatusNew EntryStatus = "NEW"
	// StatusDeleted indicates the file exists only in the original tree
	StatusDeleted EntryStatus = "DELETED"
	// StatusModified indicates the file exists on both sides with different content
	StatusModified EntryStatus = "MODIFIED"
	// StatusUnchanged indicates the file exists on both sides with identical content
	StatusUnchanged EntryStatus = "UNCHANGED"
	// StatusError indicates the content of a file present on both sides could not be compared
	StatusError EntryStatus = "ERROR"
)

// ContentMode selects how both-sides files are compared
type ContentMode string

const (
	// ContentBytes compares raw bytes
	ContentBytes ContentMode = "bytes"
	// ContentLines compares decoded line sequences
	ContentLines ContentMode = "lines"
)

// PlanEntry is one classified file path
type PlanEntry struct {
	Path   string
	Status EntryStatus
	// Err is set when Status is StatusError
	Err error
}

// DirPresence tells on which side(s) a directory was found
type DirPresence string

const (
	DirBoth     DirPresence = "both"
	DirOriginal DirPresence = "original"
	DirModified DirPresence = "modified"
)

// DirEntry is one directory of the union of both snapshots.
// Directories are annotated for rendering only and never classified as modified.
type DirEntry struct {
	Path     string
	Presence DirPresence
	Shallow  bool
}

// ComparisonPlan is the sorted, classified list of paths that drives rendering
type ComparisonPlan struct {
	Entries []PlanEntry
	Dirs    []DirEntry
	Mode    ContentMode
	// Skipped merges the unreadable subtrees of both snapshots
	Skipped []SkippedPath
}

// PlanCounts holds per-status totals
type PlanCounts struct {
	New       int
	Deleted   int
	Modified  int
	Unchanged int
	Errored   int
}

// Changed returns the number of entries that differ between the trees
func (c PlanCounts) Changed() int {
	return c.New + c.Deleted + c.Modified
}

// Counts tallies the entries by status
func (p *ComparisonPlan) Counts() PlanCounts {
	var c PlanCounts
	for _, e := range p.Entries {
		switch e.Status {
		case StatusNew:
			c.New++
		case StatusDeleted:
			c.Deleted++
		case StatusModified:
			c.Modified++
		case StatusUnchanged:
			c.Unchanged++
		case StatusError:
			c.Errored++
		}
	}
	return c
}

// HasChanges reports whether any entry is new, deleted or modified
func (p *ComparisonPlan) HasChanges() bool {
	return p.Counts().Changed() > 0
}

// Errors aggregates the per-path errors of the plan, or returns nil
func (p *ComparisonPlan) Errors() error {
	var result *multierror.Error
	for _, e := range p.Entries {
		if e.Err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", e.Path, e.Err))
		}
	}
	return result.ErrorOrNil()
}
