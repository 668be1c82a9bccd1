package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// createTree creates files (relative slash paths) under root
func createTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, content, 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

// TestNewLocal tests the Local backend constructor
func TestNewLocal(t *testing.T) {
	t.Run("ValidDirectory", func(t *testing.T) {
		tempDir := t.TempDir()

		local, err := NewLocal(tempDir)
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}
		defer local.Close()

		if !filepath.IsAbs(local.Root()) {
			t.Errorf("Root() = %s, want absolute path", local.Root())
		}
	})

	t.Run("NonExistentPath", func(t *testing.T) {
		_, err := NewLocal("/nonexistent/path/that/does/not/exist")
		if err == nil {
			t.Error("NewLocal() should fail for non-existent path")
		}
	})

	t.Run("FileNotDirectory", func(t *testing.T) {
		tempFile, err := os.CreateTemp("", "dirdiff-file-*")
		if err != nil {
			t.Fatalf("failed to create temp file: %v", err)
		}
		tempFile.Close()
		defer os.Remove(tempFile.Name())

		_, err = NewLocal(tempFile.Name())
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("NewLocal() error = %v, want ErrNotDirectory", err)
		}
	})
}

// TestLocalReadDir tests the ReadDir method
func TestLocalReadDir(t *testing.T) {
	tempDir := t.TempDir()
	createTree(t, tempDir, map[string][]byte{
		"b.txt":            []byte("b"),
		"a.txt":            []byte("a"),
		"subdir/file3.txt": []byte("content3"),
	})

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	t.Run("Root", func(t *testing.T) {
		entries, err := local.ReadDir(ctx, "")
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}

		var names []string
		for _, e := range entries {
			names = append(names, e.RelativePath)
		}
		want := []string{"a.txt", "b.txt", "subdir"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("ReadDir() = %v, want %v", names, want)
		}
		if !entries[2].IsDir {
			t.Error("subdir should be reported as a directory")
		}
		if entries[0].Size != 1 {
			t.Errorf("a.txt size = %d, want 1", entries[0].Size)
		}
	})

	t.Run("Subdir", func(t *testing.T) {
		entries, err := local.ReadDir(ctx, "subdir")
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) != 1 || entries[0].RelativePath != "subdir/file3.txt" {
			t.Errorf("ReadDir(subdir) = %+v", entries)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := local.ReadDir(ctx, "missing"); err == nil {
			t.Error("ReadDir() should fail for missing directory")
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := local.ReadDir(cctx, ""); err == nil {
			t.Error("ReadDir() should return error on cancelled context")
		}
	})
}

// TestLocalWalk tests the Walk method
func TestLocalWalk(t *testing.T) {
	tempDir := t.TempDir()
	createTree(t, tempDir, map[string][]byte{
		"file1.txt":          []byte("1"),
		"subdir/file2.txt":   []byte("2"),
		"skip/inner.txt":     []byte("3"),
		"subdir/deep/f4.txt": []byte("4"),
	})

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	t.Run("VisitsAll", func(t *testing.T) {
		var visited []string
		err := local.Walk(ctx, "", func(info FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, info.RelativePath)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		want := []string{"file1.txt", "skip", "skip/inner.txt", "subdir", "subdir/deep", "subdir/deep/f4.txt", "subdir/file2.txt"}
		if !reflect.DeepEqual(visited, want) {
			t.Errorf("Walk() visited %v, want %v", visited, want)
		}
	})

	t.Run("SkipDir", func(t *testing.T) {
		var visited []string
		err := local.Walk(ctx, "", func(info FileInfo, err error) error {
			if info.IsDir && info.Name == "skip" {
				return SkipDir
			}
			visited = append(visited, info.RelativePath)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		for _, v := range visited {
			if strings.HasPrefix(v, "skip") {
				t.Errorf("Walk() visited %s inside skipped directory", v)
			}
		}
	})

	t.Run("MissingRoot", func(t *testing.T) {
		err := local.Walk(ctx, "missing", func(info FileInfo, err error) error { return nil })
		if err == nil {
			t.Error("Walk() should fail when the walk root is missing")
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := local.Walk(cctx, "", func(info FileInfo, err error) error { return nil })
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Walk() error = %v, want context.Canceled", err)
		}
	})
}

// TestLocalRead tests Open and ReadFile
func TestLocalRead(t *testing.T) {
	tempDir := t.TempDir()
	content := []byte("test content for reading")
	createTree(t, tempDir, map[string][]byte{"dir/test.txt": content})

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	t.Run("Open", func(t *testing.T) {
		reader, err := local.Open(ctx, "dir/test.txt")
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("Open() content = %s, want %s", data, content)
		}
	})

	t.Run("ReadFile", func(t *testing.T) {
		data, err := local.ReadFile(ctx, "dir/test.txt")
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("ReadFile() content = %s, want %s", data, content)
		}
	})

	t.Run("ReadMissing", func(t *testing.T) {
		if _, err := local.ReadFile(ctx, "nope.txt"); err == nil {
			t.Error("ReadFile() should fail for non-existent file")
		}
		if _, err := local.Open(ctx, "nope.txt"); err == nil {
			t.Error("Open() should fail for non-existent file")
		}
	})
}

// TestLocalStat tests Stat
func TestLocalStat(t *testing.T) {
	tempDir := t.TempDir()
	createTree(t, tempDir, map[string][]byte{"sub/file.txt": []byte("12345")})

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	info, err := local.Stat(ctx, "sub/file.txt")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size != 5 || info.IsDir || info.RelativePath != "sub/file.txt" {
		t.Errorf("Stat() = %+v", info)
	}

	if _, err := local.Stat(ctx, "missing"); err == nil {
		t.Error("Stat() should fail for missing file")
	}

	info, err = local.Stat(ctx, "sub")
	if err != nil || !info.IsDir || info.RelativePath != "sub" {
		t.Errorf("Stat(sub) = %+v, %v", info, err)
	}
}

// TestReadText tests UTF-8 decoding of file content
func TestReadText(t *testing.T) {
	tempDir := t.TempDir()
	createTree(t, tempDir, map[string][]byte{
		"ok.txt":  []byte("héllo\n"),
		"bad.bin": {'a', 'b', 0xff, 0xfe},
	})

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	text, err := ReadText(ctx, local, "ok.txt")
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if text != "héllo\n" {
		t.Errorf("ReadText() = %q", text)
	}

	_, err = ReadText(ctx, local, "bad.bin")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("ReadText() error = %v, want *DecodeError", err)
	}
	if decodeErr.Offset != 2 {
		t.Errorf("DecodeError.Offset = %d, want 2", decodeErr.Offset)
	}
	if !strings.Contains(decodeErr.Error(), "bad.bin") {
		t.Errorf("DecodeError.Error() = %q", decodeErr.Error())
	}

	if _, err := ReadText(ctx, local, "missing.txt"); err == nil {
		t.Error("ReadText() should fail for missing file")
	}
}
