package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"time"
)

// ErrNotDirectory is returned when a comparison root is not a directory
var ErrNotDirectory = errors.New("not a directory")

// SkipDir may be returned by a WalkFunc to skip the directory's contents
var SkipDir = fs.SkipDir

// FileInfo represents metadata about a file or directory
type FileInfo struct {
	Path        string
	Size        int64
	ModTime     time.Time
	IsDir       bool
	Permissions uint32
	// RelativePath is slash-separated and relative to the backend root
	RelativePath string
	Name         string
}

// WalkFunc is called for every entry below the walked directory.
// A non-nil err reports a directory whose contents could not be read;
// returning nil from such a call skips that subtree and keeps walking.
type WalkFunc func(info FileInfo, err error) error

// Backend defines the directory-listing and file-read primitives a comparison
// root is accessed through
type Backend interface {
	// Root returns the absolute path of the backend root
	Root() string

	// ReadDir lists the direct children of a directory, sorted by name
	ReadDir(ctx context.Context, path string) ([]FileInfo, error)

	// Walk visits every entry below path in lexical order
	Walk(ctx context.Context, path string, fn WalkFunc) error

	// Open opens a file for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// ReadFile reads a whole file
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Close releases any resources held by the backend
	Close() error
}
