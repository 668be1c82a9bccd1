package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines shown around each change
const DefaultContext = 3

// NoNewlineMarker follows a hunk line whose source line has no terminator
const NoNewlineMarker = "\\ No newline at end of file"

// SplitLines splits text into lines, keeping the line terminator on each line.
// Only the final line can lack a terminator; joining the result yields text.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// NormalizeNewlines folds CRLF and lone CR line endings to LF
func NormalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Equal reports whether two line sequences are identical
func Equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Unified returns the hunks transforming a into b, each line terminated by "\n".
// A final line without a terminator is followed by NoNewlineMarker.
// It returns an empty string when the sequences are equal.
func Unified(a, b []string, context int) (string, error) {
	if context < 0 {
		context = DefaultContext
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:       markUnterminated(a),
		B:       markUnterminated(b),
		Context: context,
		Eol:     "\n",
	})
}

// markUnterminated returns lines with the unterminated final line closed by the marker
func markUnterminated(lines []string) []string {
	n := len(lines)
	if n == 0 || strings.HasSuffix(lines[n-1], "\n") {
		return lines
	}
	marked := make([]string, n)
	copy(marked, lines)
	marked[n-1] += "\n" + NoNewlineMarker + "\n"
	return marked
}

// Stats counts lines removed from a and added in b
type Stats struct {
	Added   int
	Removed int
}

// Count returns the line statistics between a and b
func Count(a, b []string) Stats {
	var stats Stats
	matcher := difflib.NewMatcher(a, b)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			stats.Removed += op.I2 - op.I1
			stats.Added += op.J2 - op.J1
		case 'd':
			stats.Removed += op.I2 - op.I1
		case 'i':
			stats.Added += op.J2 - op.J1
		}
	}
	return stats
}
