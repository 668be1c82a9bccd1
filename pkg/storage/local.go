package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sdejongh/dirdiff/internal/platform"
)

// Local is a filesystem-based storage backend rooted at one directory
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend.
// The root must exist and be a directory.
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(platform.NormalizePath(rootPath))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// ReadDir lists the direct children of a directory
func (l *Local) ReadDir(ctx context.Context, path string) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath := platform.Native(l.rootPath, path)
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, d := range entries {
		infos = append(infos, entryInfo(filepath.Join(fullPath, d.Name()), platform.Join(path, d.Name()), d))
	}
	return infos, nil
}

// Walk visits every entry below path using filepath.WalkDir
func (l *Local) Walk(ctx context.Context, path string, fn WalkFunc) error {
	fullPath := platform.Native(l.rootPath, path)

	return filepath.WalkDir(fullPath, func(p string, d fs.DirEntry, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if p == fullPath {
			// The walk root itself is never reported; failing to read it is fatal
			if err != nil {
				return fmt.Errorf("failed to read directory: %w", err)
			}
			return nil
		}

		if d == nil {
			return fn(FileInfo{Path: p, Name: filepath.Base(p), RelativePath: l.relative(p)}, err)
		}
		return fn(entryInfo(p, l.relative(p), d), err)
	})
}

// Open opens a file for reading
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(platform.Native(l.rootPath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// ReadFile reads a whole file
func (l *Local) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(platform.Native(l.rootPath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	fullPath := platform.Native(l.rootPath, path)
	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &FileInfo{
		Path:         fullPath,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		IsDir:        info.IsDir(),
		Permissions:  uint32(info.Mode().Perm()),
		RelativePath: l.relative(fullPath),
		Name:         info.Name(),
	}, nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}

func (l *Local) relative(p string) string {
	rel, err := platform.Relative(l.rootPath, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return rel
}

// entryInfo builds a FileInfo from a directory entry without following symlinks.
// Metadata that cannot be read is left zero; the entry is still reported.
func entryInfo(p, rel string, d fs.DirEntry) FileInfo {
	fi := FileInfo{
		Path:         p,
		IsDir:        d.IsDir(),
		RelativePath: rel,
		Name:         d.Name(),
	}
	if info, err := d.Info(); err == nil {
		fi.Size = info.Size()
		fi.ModTime = info.ModTime()
		fi.Permissions = uint32(info.Mode().Perm())
	}
	return fi
}
