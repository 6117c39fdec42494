package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// Copier copies files with a bounded buffer and a stall watchdog.
// Safe for reuse across files; a run copies strictly one file at a time.
type Copier struct {
	bufferSize int
}

// NewCopier creates a Copier. bufferSize <= 0 selects a 1 MiB buffer,
// plenty for audio files and small art.
func NewCopier(bufferSize int) *Copier {
	if bufferSize <= 0 {
		bufferSize = 1024 * 1024
	}
	return &Copier{bufferSize: bufferSize}
}

// Copy duplicates src to dst, creating parent directories as needed.
// The source is never modified. On failure the partial destination file
// is left in place; the run-level contract is fail-fast with no rollback.
func (c *Copier) Copy(src, dst string, opts Options) (*Result, error) {
	startTime := time.Now()

	srcInfo, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}

	dirMode := opts.DirMode
	if dirMode == 0 {
		dirMode = 0755
	}
	if err := os.MkdirAll(filepath.Dir(dst), dirMode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDestinationNotWritable, err)
	}

	result := &Result{BytesTotal: srcInfo.Size()}

	bytesCopied, err := c.copyFile(src, dst, srcInfo.Size(), opts)
	result.BytesCopied = bytesCopied
	result.Duration = time.Since(startTime)
	if err != nil {
		return result, err
	}

	if opts.PreserveModTime {
		if err := os.Chtimes(dst, time.Now(), srcInfo.ModTime()); err != nil {
			return result, fmt.Errorf("%w: preserving mtime: %v", ErrCopyFailed, err)
		}
	}

	return result, nil
}

func (c *Copier) copyFile(src, dst string, totalSize int64, opts Options) (int64, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("%w: opening source: %v", ErrSourceNotFound, err)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("%w: creating destination: %v", ErrDestinationNotWritable, err)
	}
	defer dstFile.Close()

	var bytesCopied int64
	var lastProgress atomic.Int64
	lastProgress.Store(time.Now().UnixNano())

	go func() {
		ticker := time.NewTicker(timeout / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				lastTime := time.Unix(0, lastProgress.Load())
				if time.Since(lastTime) > timeout {
					cancel()
					return
				}
			}
		}
	}()

	buf := make([]byte, c.bufferSize)

	for {
		select {
		case <-ctx.Done():
			return bytesCopied, fmt.Errorf("%w: no progress for %s", ErrTimeout, timeout)
		default:
		}

		nr, readErr := srcFile.Read(buf)
		if nr > 0 {
			nw, writeErr := dstFile.Write(buf[:nr])
			if nw > 0 {
				bytesCopied += int64(nw)
				lastProgress.Store(time.Now().UnixNano())

				if opts.Progress != nil {
					opts.Progress(bytesCopied, totalSize)
				}
			}
			if writeErr != nil {
				return bytesCopied, fmt.Errorf("%w: write error: %v", ErrCopyFailed, writeErr)
			}
			if nr != nw {
				return bytesCopied, fmt.Errorf("%w: short write: %d != %d", ErrCopyFailed, nr, nw)
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return bytesCopied, fmt.Errorf("%w: read error: %v", ErrCopyFailed, readErr)
		}
	}

	if err := dstFile.Sync(); err != nil {
		return bytesCopied, fmt.Errorf("%w: sync error: %v", ErrCopyFailed, err)
	}

	if opts.FileMode != 0 {
		if err := os.Chmod(dst, opts.FileMode); err != nil {
			return bytesCopied, fmt.Errorf("%w: chmod failed: %v", ErrCopyFailed, err)
		}
	}

	return bytesCopied, nil
}
