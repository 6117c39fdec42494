package ui

import (
	"fmt"
	"os"
	"strings"
)

// ByteProgress shows an in-place progress bar for a single file copy.
// Outside a terminal it stays silent; the per-file "Copying file i of N"
// lines already cover non-interactive output.
type ByteProgress struct {
	total  int64
	width  int
	writer *os.File
	shown  bool
}

// NewByteProgress creates a progress bar for total bytes
func NewByteProgress(total int64) *ByteProgress {
	return &ByteProgress{
		total:  total,
		width:  40,
		writer: os.Stdout,
	}
}

// Update redraws the bar at current bytes
func (p *ByteProgress) Update(current int64) {
	if !IsTerminal() || p.total <= 0 {
		return
	}

	if current > p.total {
		current = p.total
	}

	percent := float64(current) / float64(p.total) * 100
	filled := int(float64(p.width) * float64(current) / float64(p.total))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	fmt.Fprintf(p.writer, "\r  [%s] %s/%s (%.1f%%)", bar, FormatBytes(current), FormatBytes(p.total), percent)
	p.shown = true
}

// Done clears the bar so the next line starts clean
func (p *ByteProgress) Done() {
	if p.shown {
		fmt.Fprint(p.writer, "\r"+strings.Repeat(" ", p.width+40)+"\r")
	}
}
