// Package exporter orchestrates an export run: scan the library, show the
// plan, confirm with the operator, recreate the destination, copy files.
//
// Every phase is strictly sequential. The scan finishes and produces final
// totals before the operator is asked anything, and nothing touches the
// filesystem before both confirmations pass. Once copying starts there is
// no rollback; a failed run leaves the destination partially populated.
package exporter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Nomadcxx/karacopy/internal/library"
	"github.com/Nomadcxx/karacopy/internal/logging"
	"github.com/Nomadcxx/karacopy/internal/plans"
	"github.com/Nomadcxx/karacopy/internal/transfer"
	"github.com/Nomadcxx/karacopy/internal/ui"
)

// ErrDestination is returned when the destination cannot be removed or created
var ErrDestination = errors.New("cannot prepare destination")

// byteProgressThreshold is the file size above which a live byte progress
// bar is drawn (terminal only).
const byteProgressThreshold = 8 * 1024 * 1024

// ConfirmFunc answers a yes/no prompt. Injectable so tests can script the
// operator instead of reading stdin.
type ConfirmFunc func(prompt string, defaultYes bool) bool

// Summary reports what an export run actually did
type Summary struct {
	Aborted     bool // operator declined a prompt; nothing was copied
	FilesCopied int
	MediaCopied int
	BytesCopied int64
	Duration    time.Duration
}

// Exporter runs the scan/confirm/copy sequence
type Exporter struct {
	scanner  *library.Scanner
	copier   *transfer.Copier
	log      *logging.Logger
	out      io.Writer
	confirm  ConfirmFunc
	copyOpts transfer.Options
	assume   bool
}

// Option configures an Exporter
type Option func(*Exporter)

// WithExtensions overrides the recognized file extensions
func WithExtensions(exts library.Extensions) Option {
	return func(e *Exporter) { e.scanner = library.NewScanner(exts) }
}

// WithLogger sets the logger (default: logging.Nop())
func WithLogger(log *logging.Logger) Option {
	return func(e *Exporter) { e.log = log }
}

// WithOutput redirects operator-facing output (default: os.Stdout)
func WithOutput(out io.Writer) Option {
	return func(e *Exporter) { e.out = out }
}

// WithConfirmFunc sets the confirmation prompt (default: ui.Ask on stdin)
func WithConfirmFunc(confirm ConfirmFunc) Option {
	return func(e *Exporter) { e.confirm = confirm }
}

// WithAssumeYes skips both confirmation prompts
func WithAssumeYes(assume bool) Option {
	return func(e *Exporter) { e.assume = assume }
}

// WithCopyOptions sets the per-file copy options
func WithCopyOptions(opts transfer.Options) Option {
	return func(e *Exporter) { e.copyOpts = opts }
}

// New creates an Exporter
func New(opts ...Option) *Exporter {
	e := &Exporter{
		scanner:  library.NewScanner(library.DefaultExtensions()),
		copier:   transfer.NewCopier(0),
		log:      logging.Nop(),
		out:      os.Stdout,
		confirm:  ui.Ask,
		copyOpts: transfer.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scan builds the copy plan for sourceRoot
func (e *Exporter) Scan(sourceRoot string, filter library.YearFilter) (*plans.CopyPlan, error) {
	plan, err := e.scanner.Scan(sourceRoot, filter)
	if err != nil {
		e.log.Error("scan", "scan failed", err, logging.F("source", sourceRoot))
		return nil, err
	}

	e.log.Info("scan", "scan complete",
		logging.F("source", sourceRoot),
		logging.F("files", plan.Summary.TotalFiles),
		logging.F("media", plan.Summary.MediaFiles),
		logging.F("bytes", plan.Summary.TotalBytes))
	return plan, nil
}

// ShowPlan prints the full file listing and the three summary lines.
// Styling degrades to plain text when stdout is not a terminal, so the
// line content stays stable for pipes and tests.
func (e *Exporter) ShowPlan(plan *plans.CopyPlan) {
	fmt.Fprintln(e.out, "Files to be copied:")
	for _, entry := range plan.Entries {
		fmt.Fprintln(e.out, ui.Path(entry.SourcePath))
	}
	fmt.Fprintln(e.out, ui.Info(fmt.Sprintf("Total number of files to be copied (including media/lyrics/art): %d", plan.Summary.TotalFiles)))
	fmt.Fprintln(e.out, ui.Info(fmt.Sprintf("Total number of media files to be copied: %d", plan.Summary.MediaFiles)))
	fmt.Fprintln(e.out, ui.Info(fmt.Sprintf("Total filesize to be copied: %d bytes (%s)", plan.Summary.TotalBytes, ui.FormatBytes(plan.Summary.TotalBytes))))
}

// ConfirmPlan asks the operator to proceed. Default answer is yes.
func (e *Exporter) ConfirmPlan() bool {
	if e.assume {
		return true
	}
	return e.confirm("Proceed with copy?", true)
}

// PrepareDestination creates destRoot, wiping it first if it already exists
// and the operator agrees. Returns false when the operator declines; in that
// case nothing has been touched.
func (e *Exporter) PrepareDestination(destRoot string) (bool, error) {
	if _, err := os.Stat(destRoot); err == nil {
		if !e.assume && !e.confirm("Destination folder exists, are you sure you wish to overwrite it (all contents will be lost)?", true) {
			return false, nil
		}
		if err := os.RemoveAll(destRoot); err != nil {
			e.log.Error("dest", "failed to remove destination", err, logging.F("dest", destRoot))
			return false, fmt.Errorf("%w: removing %s: %v", ErrDestination, destRoot, err)
		}
		if err := os.MkdirAll(destRoot, 0755); err != nil {
			return false, fmt.Errorf("%w: creating %s: %v", ErrDestination, destRoot, err)
		}
		fmt.Fprintln(e.out, ui.Success("Existing folder deleted successfully. Proceeding with copy"))
		e.log.Info("dest", "destination recreated", logging.F("dest", destRoot))
		return true, nil
	}

	if err := os.MkdirAll(destRoot, 0755); err != nil {
		return false, fmt.Errorf("%w: creating %s: %v", ErrDestination, destRoot, err)
	}
	return true, nil
}

// Execute copies every plan entry into destRoot in plan order, preserving
// relative paths. Fail-fast: the first copy error aborts the run with the
// failing path in the error.
func (e *Exporter) Execute(plan *plans.CopyPlan, destRoot string) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}
	total := len(plan.Entries)

	for i, entry := range plan.Entries {
		fmt.Fprintf(e.out, "Copying file %d of %d: %s\n", i+1, total, ui.Dim(entry.SourcePath))

		opts := e.copyOpts
		var bar *ui.ByteProgress
		if e.out == os.Stdout && entry.Size >= byteProgressThreshold && ui.IsTerminal() {
			bar = ui.NewByteProgress(entry.Size)
			opts.Progress = func(current, _ int64) { bar.Update(current) }
		}

		dst := filepath.Join(destRoot, entry.RelPath)
		result, err := e.copier.Copy(entry.SourcePath, dst, opts)
		if bar != nil {
			bar.Done()
		}
		if result != nil {
			summary.BytesCopied += result.BytesCopied
		}
		if err != nil {
			e.log.Error("copy", "copy failed", err,
				logging.F("source", entry.SourcePath),
				logging.F("dest", dst))
			return summary, fmt.Errorf("copying %s: %w", entry.SourcePath, err)
		}

		summary.FilesCopied++
		if entry.IsMedia {
			summary.MediaCopied++
		}
	}

	summary.Duration = time.Since(start)
	e.log.Info("copy", "copy complete",
		logging.F("files", summary.FilesCopied),
		logging.F("bytes", summary.BytesCopied),
		logging.F("duration", summary.Duration))
	return summary, nil
}

// Run performs the whole export: scan, show, confirm, prepare, execute.
// A declined prompt yields Summary.Aborted with no filesystem mutation.
func (e *Exporter) Run(sourceRoot, destRoot string, filter library.YearFilter) (*Summary, error) {
	plan, err := e.Scan(sourceRoot, filter)
	if err != nil {
		return nil, err
	}
	return e.RunPlan(plan, destRoot)
}

// RunPlan is Run for an already-built plan.
func (e *Exporter) RunPlan(plan *plans.CopyPlan, destRoot string) (*Summary, error) {
	e.ShowPlan(plan)

	if plan.Summary.TotalFiles == 0 {
		fmt.Fprintln(e.out, ui.Warning("Nothing to copy"))
		return &Summary{}, nil
	}

	if !e.ConfirmPlan() {
		fmt.Fprintln(e.out, ui.Warning("Copy aborted"))
		return &Summary{Aborted: true}, nil
	}
	fmt.Fprintln(e.out, "Proceeding with copy")

	proceed, err := e.PrepareDestination(destRoot)
	if err != nil {
		return nil, err
	}
	if !proceed {
		fmt.Fprintln(e.out, ui.Warning("Copy aborted"))
		return &Summary{Aborted: true}, nil
	}

	summary, err := e.Execute(plan, destRoot)
	if err != nil {
		return summary, err
	}

	fmt.Fprintln(e.out, ui.Success(fmt.Sprintf("Copied %d files in %s", summary.FilesCopied, ui.FormatDuration(summary.Duration))))
	return summary, nil
}
