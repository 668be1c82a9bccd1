// Package platform converts between native filesystem paths and the
// slash-separated relative paths used throughout a comparison.
package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath normalizes a native path for the current platform
func NormalizePath(path string) string {
	normalized := filepath.Clean(path)

	// On Windows, ensure UNC paths are preserved
	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, "\\\\") && !strings.HasPrefix(normalized, "\\\\") {
			normalized = "\\\\" + normalized
		}
	}

	return normalized
}

// IsUNCPath checks if a path is a UNC path (Windows network share)
func IsUNCPath(path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	return strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")
}

// Relative returns target relative to root in slash form
func Relative(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Native joins a slash-separated relative path onto a native root
func Native(root, rel string) string {
	if rel == "" || rel == "." {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}

// Join joins relative path components with '/'
func Join(parent, name string) string {
	if parent == "" || parent == "." {
		return name
	}
	return parent + "/" + name
}

// Components splits a relative path into its components.
// Empty and "." components are dropped.
func Components(rel string) []string {
	raw := strings.Split(filepath.ToSlash(rel), "/")
	parts := raw[:0]
	for _, p := range raw {
		if p == "" || p == "." {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

// Depth returns the number of components of a relative path
func Depth(rel string) int {
	return len(Components(rel))
}

// Parent returns the parent of a relative path ("" for top-level entries)
func Parent(rel string) string {
	idx := strings.LastIndex(rel, "/")
	if idx < 0 {
		return ""
	}
	return rel[:idx]
}

// Base returns the last component of a relative path
func Base(rel string) string {
	return rel[strings.LastIndex(rel, "/")+1:]
}

// ComparePaths orders two relative paths by their component sequences,
// so that a directory's contents stay grouped ("a/z" < "a-b").
func ComparePaths(a, b string) int {
	pa, pb := Components(a), Components(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := strings.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// ValidatePath checks if a path is valid for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if runtime.GOOS == "windows" {
		invalidChars := []string{"<", ">", "\"", "|", "?", "*"}
		for _, char := range invalidChars {
			if strings.Contains(path, char) && !IsUNCPath(path) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
