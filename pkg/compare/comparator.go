package compare

import (
	"context"

	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// Result represents the outcome of comparing two files
type Result string

const (
	// Same indicates files are identical
	Same Result = "same"
	// Different indicates files differ
	Different Result = "different"
)

// Comparison holds the result of comparing one path across both trees
type Comparison struct {
	Path   string
	Result Result
	Reason string
}

// Comparator defines the interface for content comparison algorithms
type Comparator interface {
	// Compare compares path in both backends and returns the result
	Compare(ctx context.Context, original, modified storage.Backend, path string) (*Comparison, error)

	// Name returns the name of the comparison method
	Name() string

	// Mode returns the content semantics the comparator applies
	Mode() models.ContentMode
}

// ForMode returns the comparator implementing mode
func ForMode(mode models.ContentMode, bufferSize int) Comparator {
	if mode == models.ContentLines {
		return NewLineComparator()
	}
	return NewByteComparator(bufferSize)
}
