package filter

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// matcher matches one ignore pattern against path components.
//
// Patterns support:
//   - plain names: .git, node_modules (component equality)
//   - glob patterns: *.pyc, build-?, [._]cache (per component)
//   - path patterns: docs/build, vendor/*/testdata (leading component sequence)
type matcher struct {
	pattern string
	literal bool
	multi   bool // pattern spans several components
	g       glob.Glob
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func compileMatcher(pattern string) (*matcher, error) {
	normalized := strings.TrimSuffix(strings.ReplaceAll(pattern, "\\", "/"), "/")
	if normalized == "" {
		return nil, fmt.Errorf("empty pattern %q", pattern)
	}

	m := &matcher{
		pattern: normalized,
		multi:   strings.Contains(normalized, "/"),
	}

	if !hasMeta(normalized) {
		m.literal = true
		return m, nil
	}

	var err error
	if m.multi {
		m.g, err = glob.Compile(normalized, '/')
	} else {
		m.g, err = glob.Compile(normalized)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return m, nil
}

func (m *matcher) matchComponent(name string) bool {
	if m.literal {
		return name == m.pattern
	}
	return m.g.Match(name)
}

// matchPath reports whether the pattern matches any component of parts,
// or for path patterns any leading component sequence.
func (m *matcher) matchPath(parts []string) bool {
	if !m.multi {
		for _, part := range parts {
			if m.matchComponent(part) {
				return true
			}
		}
		return false
	}

	for i := 1; i <= len(parts); i++ {
		prefix := strings.Join(parts[:i], "/")
		if m.literal {
			if prefix == m.pattern {
				return true
			}
			continue
		}
		if m.g.Match(prefix) {
			return true
		}
	}
	return false
}
