package compare

import (
	"context"
	"fmt"

	"github.com/sdejongh/dirdiff/pkg/diff"
	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// LineComparator compares files as UTF-8 line sequences.
// CRLF and CR line endings are folded to LF first, so a change that only
// touches line endings compares as the same content.
type LineComparator struct{}

// NewLineComparator creates a line comparator
func NewLineComparator() *LineComparator {
	return &LineComparator{}
}

// Compare decodes path on both sides and compares the line sequences.
// A file that is not valid UTF-8 yields a *storage.DecodeError.
func (c *LineComparator) Compare(ctx context.Context, original, modified storage.Backend, path string) (*Comparison, error) {
	origLines, err := ReadLines(ctx, original, path)
	if err != nil {
		return nil, err
	}
	modLines, err := ReadLines(ctx, modified, path)
	if err != nil {
		return nil, err
	}

	if diff.Equal(origLines, modLines) {
		return &Comparison{
			Path:   path,
			Result: Same,
			Reason: fmt.Sprintf("%d lines match", len(origLines)),
		}, nil
	}

	stats := diff.Count(origLines, modLines)
	return &Comparison{
		Path:   path,
		Result: Different,
		Reason: fmt.Sprintf("+%d -%d lines", stats.Added, stats.Removed),
	}, nil
}

// Name returns the comparator name
func (c *LineComparator) Name() string {
	return "lines"
}

// Mode returns models.ContentLines
func (c *LineComparator) Mode() models.ContentMode {
	return models.ContentLines
}

// ReadLines reads path as UTF-8 text and returns its comparison lines
func ReadLines(ctx context.Context, b storage.Backend, path string) ([]string, error) {
	text, err := storage.ReadText(ctx, b, path)
	if err != nil {
		return nil, err
	}
	return SplitText(text), nil
}

// SplitText returns the lines compared in diff modes: line endings folded to
// LF, each line keeping its terminator. A missing final newline is preserved,
// so adding or removing it is a change.
func SplitText(text string) []string {
	return diff.SplitLines(diff.NormalizeNewlines(text))
}
