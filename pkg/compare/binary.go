package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/dirdiff/pkg/models"
	"github.com/sdejongh/dirdiff/pkg/storage"
)

// DefaultBufferSize is the read buffer used by ByteComparator
const DefaultBufferSize = 64 * 1024

// ByteComparator compares files byte-by-byte.
// Line endings are significant: a CRLF-only change is a difference.
type ByteComparator struct {
	bufferSize int
	bufferPool *sync.Pool
}

// NewByteComparator creates a new byte-by-byte comparator
func NewByteComparator(bufferSize int) *ByteComparator {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &ByteComparator{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// Compare compares path in both trees byte-by-byte
func (c *ByteComparator) Compare(ctx context.Context, original, modified storage.Backend, path string) (*Comparison, error) {
	origInfo, err := original.Stat(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat original: %w", err)
	}
	modInfo, err := modified.Stat(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat modified: %w", err)
	}

	// Quick check: if sizes differ, files are different
	if origInfo.Size != modInfo.Size {
		return &Comparison{
			Path:   path,
			Result: Different,
			Reason: fmt.Sprintf("size mismatch: original=%d, modified=%d", origInfo.Size, modInfo.Size),
		}, nil
	}

	origReader, err := original.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open original file: %w", err)
	}
	defer origReader.Close()

	modReader, err := modified.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open modified file: %w", err)
	}
	defer modReader.Close()

	// Get buffers from pool
	origBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(origBufPtr)
	origBuf := *origBufPtr

	modBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(modBufPtr)
	modBuf := *modBufPtr

	var bytesCompared int64
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		origN, origErr := readChunk(origReader, origBuf)
		modN, modErr := readChunk(modReader, modBuf)
		if origErr != nil {
			return nil, fmt.Errorf("failed to read original: %w", origErr)
		}
		if modErr != nil {
			return nil, fmt.Errorf("failed to read modified: %w", modErr)
		}

		if origN != modN {
			// Sizes matched at stat time: one side changed during the read
			return &Comparison{
				Path:   path,
				Result: Different,
				Reason: fmt.Sprintf("length mismatch at offset %d", bytesCompared+int64(min(origN, modN))),
			}, nil
		}

		if !bytes.Equal(origBuf[:origN], modBuf[:modN]) {
			offset := bytesCompared
			for i := 0; i < origN; i++ {
				if origBuf[i] != modBuf[i] {
					offset += int64(i)
					break
				}
			}
			return &Comparison{
				Path:   path,
				Result: Different,
				Reason: fmt.Sprintf("content differs at byte offset %d", offset),
			}, nil
		}

		bytesCompared += int64(origN)
		if origN < len(origBuf) {
			break
		}
	}

	return &Comparison{
		Path:   path,
		Result: Same,
		Reason: fmt.Sprintf("content matches (%d bytes)", bytesCompared),
	}, nil
}

// readChunk fills buf unless the reader ends first; reaching the end is not an error
func readChunk(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}

// Name returns the comparator name
func (c *ByteComparator) Name() string {
	return "bytes"
}

// Mode returns models.ContentBytes
func (c *ByteComparator) Mode() models.ContentMode {
	return models.ContentBytes
}
