package models

import (
	"time"
)

// ReportMethod selects the rendering style of the report
type ReportMethod string

const (
	// MethodGeneral renders a directory tree followed by full before/after contents
	MethodGeneral ReportMethod = "general"
	// MethodUnified renders the original content followed by a unified diff
	MethodUnified ReportMethod = "unified"
	// MethodIncludes renders only unified diffs for modified files
	MethodIncludes ReportMethod = "includes"
)

// ContentMode returns how the method compares files present on both sides
func (m ReportMethod) ContentMode() ContentMode {
	if m == MethodGeneral {
		return ContentBytes
	}
	return ContentLines
}

// IsValid reports whether m is a known method
func (m ReportMethod) IsValid() bool {
	switch m {
	case MethodGeneral, MethodUnified, MethodIncludes:
		return true
	}
	return false
}

// ScanStrategy selects how a tree is enumerated
type ScanStrategy string

const (
	// StrategyWalk uses a recursive walk with subtree pruning
	StrategyWalk ScanStrategy = "walk"
	// StrategyBFS uses an iterative breadth-first walk with explicit depth
	StrategyBFS ScanStrategy = "bfs"
)

// IsValid reports whether s is a known strategy
func (s ScanStrategy) IsValid() bool {
	return s == StrategyWalk || s == StrategyBFS
}

// CompareOperation represents the configuration of one comparison run
type CompareOperation struct {
	ID             string
	OriginalPath   string
	ModifiedPath   string
	OutputPath     string
	Method         ReportMethod
	Strategy       ScanStrategy
	Spec           IgnoreSpec
	ContextLines   int
	TagDirectories bool
	ConcurrentScan bool
	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
}

// Validate checks if the operation configuration is valid
func (op *CompareOperation) Validate() error {
	if op.OriginalPath == "" {
		return &ValidationError{Field: "OriginalPath", Message: "original path is required"}
	}
	if op.ModifiedPath == "" {
		return &ValidationError{Field: "ModifiedPath", Message: "modified path is required"}
	}
	if op.OutputPath == "" {
		return &ValidationError{Field: "OutputPath", Message: "output path is required"}
	}
	if !op.Method.IsValid() {
		return &ValidationError{Field: "Method", Message: "unknown report method: " + string(op.Method)}
	}
	if !op.Strategy.IsValid() {
		return &ValidationError{Field: "Strategy", Message: "unknown scan strategy: " + string(op.Strategy)}
	}
	if op.ContextLines < 0 {
		return &ValidationError{Field: "ContextLines", Message: "context lines must be zero or positive"}
	}
	return op.Spec.Validate()
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
