package models

// FilterDecision is the outcome of applying an IgnoreSpec to a single path
type FilterDecision string

const (
	// DecisionInclude means the path is visible to the comparison
	DecisionInclude FilterDecision = "include"
	// DecisionFullIgnore means the path and everything below it is invisible
	DecisionFullIgnore FilterDecision = "full_ignore"
	// DecisionShallowIgnore means the directory is listed but never descended
	DecisionShallowIgnore FilterDecision = "shallow_ignore"
)

// IgnoreSpec holds the filtering rules of one comparison run.
// It is built once from configuration and never modified afterwards.
type IgnoreSpec struct {
	// IgnorePatterns are matched against every component of a path
	IgnorePatterns []string
	// ShallowIgnore names are matched against the first component only
	ShallowIgnore []string
	// IncludeOnly restricts the comparison to paths starting with one of these prefixes
	IncludeOnly []string
	// MaxDepth bounds the number of path components (nil = unlimited)
	MaxDepth *int
}

// HasMaxDepth reports whether a depth bound is configured
func (s *IgnoreSpec) HasMaxDepth() bool {
	return s != nil && s.MaxDepth != nil
}

// DepthLimit returns the depth bound, or -1 when unlimited
func (s *IgnoreSpec) DepthLimit() int {
	if !s.HasMaxDepth() {
		return -1
	}
	return *s.MaxDepth
}

// Validate checks the spec for values that can never match anything sensible
func (s *IgnoreSpec) Validate() error {
	if s.MaxDepth != nil && *s.MaxDepth < 0 {
		return &ValidationError{Field: "MaxDepth", Message: "max depth must be zero or positive"}
	}
	for _, p := range s.IgnorePatterns {
		if p == "" {
			return &ValidationError{Field: "IgnorePatterns", Message: "empty pattern"}
		}
	}
	for _, n := range s.ShallowIgnore {
		if n == "" {
			return &ValidationError{Field: "ShallowIgnore", Message: "empty name"}
		}
	}
	for _, p := range s.IncludeOnly {
		if p == "" {
			return &ValidationError{Field: "IncludeOnly", Message: "empty prefix"}
		}
	}
	return nil
}

// IntPtr is a small helper for building specs with a depth bound
func IntPtr(v int) *int {
	return &v
}
