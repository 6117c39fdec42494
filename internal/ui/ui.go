package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

var (
	// Detect if we're in a terminal
	isTerminal   = isatty.IsTerminal(os.Stdout.Fd())
	colorEnabled = true
)

// DisableColors disables all color output
func DisableColors() {
	colorEnabled = false
	isTerminal = false
	initStyles()
}

// IsTerminal checks if stdout is a terminal
func IsTerminal() bool {
	return isTerminal && colorEnabled
}

// Section prints a section header
func Section(title string) {
	fmt.Println()
	if IsTerminal() {
		fmt.Println("━━━ " + strings.ToUpper(title) + " ━━━")
	} else {
		fmt.Println(strings.ToUpper(title))
		fmt.Println(strings.Repeat("=", len(title)+6))
	}
}

// FormatBytes formats bytes to human-readable binary units (KiB, MiB, ...)
func FormatBytes(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

// FormatDuration formats duration to human-readable format
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// Ask prompts for a yes/no answer on stdin. An empty answer selects the
// default; anything unrecognized re-prompts.
func Ask(prompt string, defaultYes bool) bool {
	return AskReader(os.Stdin, os.Stdout, prompt, defaultYes)
}

// AskReader is Ask with injectable input/output streams for testing.
func AskReader(in io.Reader, out io.Writer, prompt string, defaultYes bool) bool {
	suffix := " [y/N] "
	if defaultYes {
		suffix = " [Y/n] "
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, prompt+suffix)

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			// EOF with no answer: take the default
			return defaultYes
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes
		case "y", "ye", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Fprintln(out, "Please respond with 'yes' or 'no' (or 'y' or 'n').")
		}
	}
}
