package storage

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// DecodeError reports a file whose content is not valid UTF-8 text
type DecodeError struct {
	Path   string
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 in %s at byte offset %d", e.Path, e.Offset)
}

// ReadText reads a file and checks that it decodes as UTF-8
func ReadText(ctx context.Context, b Backend, path string) (string, error) {
	data, err := b.ReadFile(ctx, path)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", &DecodeError{Path: path, Offset: invalidOffset(data)}
	}

	return string(data), nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
