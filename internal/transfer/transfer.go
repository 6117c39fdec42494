// Package transfer implements the file copy used by the export run: a
// buffered copy loop with a stall watchdog, so a failing disk aborts the
// run instead of hanging it indefinitely.
package transfer

import (
	"errors"
	"os"
	"time"
)

// Common errors returned by copy operations
var (
	// ErrSourceNotFound is returned when the source file doesn't exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrDestinationNotWritable is returned when the destination is not writable
	ErrDestinationNotWritable = errors.New("destination not writable")

	// ErrTimeout is returned when a copy makes no progress within the timeout
	ErrTimeout = errors.New("copy timed out: no progress")

	// ErrCopyFailed is returned when a copy fails mid-stream
	ErrCopyFailed = errors.New("copy failed")
)

// Options configures the behavior of a file copy operation.
type Options struct {
	// Timeout specifies how long to wait without progress before aborting.
	// A value of 0 uses a 30 minute default.
	Timeout time.Duration

	// PreserveModTime carries the source modification time to the destination.
	PreserveModTime bool

	// Progress is called as bytes land in the destination.
	// current is bytes copied so far, total is the source size.
	Progress func(current, total int64)

	// FileMode sets destination file permissions. Zero keeps the umask default.
	FileMode os.FileMode

	// DirMode sets permissions for created directories. Zero means 0755.
	DirMode os.FileMode
}

// DefaultOptions returns sensible default copy options.
func DefaultOptions() Options {
	return Options{
		Timeout:         5 * time.Minute,
		PreserveModTime: true,
		Progress:        nil,
		FileMode:        0,
		DirMode:         0,
	}
}

// Result contains details about a completed copy operation.
type Result struct {
	// BytesTotal is the size of the source file
	BytesTotal int64

	// BytesCopied is the number of bytes actually written
	BytesCopied int64

	// Duration is how long the copy took
	Duration time.Duration
}
