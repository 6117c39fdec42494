package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAskReader(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"empty takes default yes", "\n", true, true},
		{"empty takes default no", "\n", false, false},
		{"explicit yes", "yes\n", false, true},
		{"short yes", "y\n", false, true},
		{"uppercase", "Y\n", false, true},
		{"explicit no", "no\n", true, false},
		{"short no", "n\n", true, false},
		{"garbage then yes", "maybe\ny\n", false, true},
		{"eof takes default", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := AskReader(strings.NewReader(tt.input), &out, "Proceed with copy?", tt.defaultYes)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAskReader_RepromptsOnGarbage(t *testing.T) {
	var out bytes.Buffer
	AskReader(strings.NewReader("what\nn\n"), &out, "Proceed with copy?", true)
	assert.Contains(t, out.String(), "Please respond with 'yes' or 'no'")
}

func TestAskReader_PromptSuffix(t *testing.T) {
	var out bytes.Buffer
	AskReader(strings.NewReader("\n"), &out, "Proceed with copy?", true)
	assert.Contains(t, out.String(), "[Y/n]")

	out.Reset()
	AskReader(strings.NewReader("\n"), &out, "Proceed with copy?", false)
	assert.Contains(t, out.String(), "[y/N]")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{3 * time.Second, "3.0s"},
		{90 * time.Second, "1.5m"},
		{2 * time.Hour, "2.0h"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.bytes))
	}
}
