package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// go test pipes stdout, so styles must render as plain text and keep
// machine-readable output byte-stable.
func TestStyles_PlainWithoutTerminal(t *testing.T) {
	assert.False(t, IsTerminal())

	assert.Equal(t, "done", Success("done"))
	assert.Equal(t, "failed", Error("failed"))
	assert.Equal(t, "careful", Warning("careful"))
	assert.Equal(t, "note", Info("note"))
	assert.Equal(t, "quiet", Dim("quiet"))
	assert.Equal(t, "/music/a.mp3", Path("/music/a.mp3"))
}

func TestDisableColors(t *testing.T) {
	DisableColors()

	assert.False(t, IsTerminal())
	assert.Equal(t, "done", Success("done"))
	assert.Equal(t, "failed", Error("failed"))
}
