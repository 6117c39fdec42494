package exporter

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nomadcxx/karacopy/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedConfirm answers prompts from a fixed list and records what was asked
type scriptedConfirm struct {
	answers []bool
	asked   []string
}

func (s *scriptedConfirm) confirm(prompt string, defaultYes bool) bool {
	s.asked = append(s.asked, prompt)
	if len(s.answers) == 0 {
		return defaultYes
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setupLibrary builds a small source tree with one qualifying album
func setupLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Artist", "Album [1985]", "Track.mp3"), "media-bytes")
	writeFile(t, filepath.Join(root, "Artist", "Album [1985]", "Track.lrc"), "[00:01] la")
	writeFile(t, filepath.Join(root, "Artist", "Album [1985]", "cover.jpg"), "art")
	writeFile(t, filepath.Join(root, "Artist", "Album [1990]", "Other.mp3"), "media-bytes")
	return root
}

// listTree returns relative path -> content for every file under root
func listTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func TestRun_CopiesSelectedFiles(t *testing.T) {
	source := setupLibrary(t)
	dest := filepath.Join(t.TempDir(), "out")

	confirm := &scriptedConfirm{answers: []bool{true}}
	var out bytes.Buffer
	exp := New(WithConfirmFunc(confirm.confirm), WithOutput(&out))

	summary, err := exp.Run(source, dest, library.YearFilter{Min: 1980, Max: 1989})
	require.NoError(t, err)
	require.False(t, summary.Aborted)

	assert.Equal(t, 3, summary.FilesCopied)
	assert.Equal(t, 1, summary.MediaCopied)

	assert.Equal(t, map[string]string{
		"Artist/Album [1985]/Track.mp3": "media-bytes",
		"Artist/Album [1985]/Track.lrc": "[00:01] la",
		"Artist/Album [1985]/cover.jpg": "art",
	}, listTree(t, dest))
}

func TestRun_TotalsMatchCopiedCount(t *testing.T) {
	source := setupLibrary(t)
	dest := filepath.Join(t.TempDir(), "out")

	var out bytes.Buffer
	exp := New(WithAssumeYes(true), WithOutput(&out))

	plan, err := exp.Scan(source, library.YearFilter{})
	require.NoError(t, err)

	summary, err := exp.RunPlan(plan, dest)
	require.NoError(t, err)

	assert.Equal(t, plan.Summary.TotalFiles, summary.FilesCopied)
	assert.Equal(t, plan.Summary.MediaFiles, summary.MediaCopied)
	assert.Equal(t, plan.Summary.TotalBytes, summary.BytesCopied)
	// Final line reports the count and the elapsed time
	assert.Contains(t, out.String(), fmt.Sprintf("Copied %d files in ", summary.FilesCopied))
}

func TestRun_DeclineFirstPromptLeavesDestinationAlone(t *testing.T) {
	source := setupLibrary(t)
	dest := filepath.Join(t.TempDir(), "out")

	confirm := &scriptedConfirm{answers: []bool{false}}
	var out bytes.Buffer
	exp := New(WithConfirmFunc(confirm.confirm), WithOutput(&out))

	summary, err := exp.Run(source, dest, library.YearFilter{})
	require.NoError(t, err)

	assert.True(t, summary.Aborted)
	assert.Zero(t, summary.FilesCopied)
	assert.NoDirExists(t, dest)
	assert.Contains(t, out.String(), "Copy aborted")
	require.Len(t, confirm.asked, 1)
}

func TestRun_DeclineOverwriteLeavesDestinationUnchanged(t *testing.T) {
	source := setupLibrary(t)
	dest := t.TempDir()
	writeFile(t, filepath.Join(dest, "keep.txt"), "precious")

	confirm := &scriptedConfirm{answers: []bool{true, false}}
	var out bytes.Buffer
	exp := New(WithConfirmFunc(confirm.confirm), WithOutput(&out))

	summary, err := exp.Run(source, dest, library.YearFilter{})
	require.NoError(t, err)

	assert.True(t, summary.Aborted)
	assert.Equal(t, map[string]string{"keep.txt": "precious"}, listTree(t, dest))
	require.Len(t, confirm.asked, 2)
}

func TestRun_OverwriteRecreatesDestination(t *testing.T) {
	source := setupLibrary(t)
	dest := t.TempDir()
	writeFile(t, filepath.Join(dest, "stale.mp3"), "old export")

	confirm := &scriptedConfirm{answers: []bool{true, true}}
	var out bytes.Buffer
	exp := New(WithConfirmFunc(confirm.confirm), WithOutput(&out))

	summary, err := exp.Run(source, dest, library.YearFilter{})
	require.NoError(t, err)
	require.False(t, summary.Aborted)

	tree := listTree(t, dest)
	assert.NotContains(t, tree, "stale.mp3")
	assert.Contains(t, tree, "Artist/Album [1985]/Track.mp3")
	assert.Contains(t, out.String(), "Existing folder deleted successfully")
}

func TestRun_Idempotent(t *testing.T) {
	source := setupLibrary(t)
	dest := filepath.Join(t.TempDir(), "out")

	exp := New(WithAssumeYes(true), WithOutput(&bytes.Buffer{}))

	_, err := exp.Run(source, dest, library.YearFilter{})
	require.NoError(t, err)
	first := listTree(t, dest)

	_, err = exp.Run(source, dest, library.YearFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, listTree(t, dest))
}

func TestRun_EmptyPlanPromptsNothing(t *testing.T) {
	source := t.TempDir()
	writeFile(t, filepath.Join(source, "Artist", "Album [1985]", "Silent.mp3"), "media")
	dest := filepath.Join(t.TempDir(), "out")

	confirm := &scriptedConfirm{}
	var out bytes.Buffer
	exp := New(WithConfirmFunc(confirm.confirm), WithOutput(&out))

	summary, err := exp.Run(source, dest, library.YearFilter{})
	require.NoError(t, err)

	assert.False(t, summary.Aborted)
	assert.Zero(t, summary.FilesCopied)
	assert.Empty(t, confirm.asked)
	assert.NoDirExists(t, dest)
	assert.Contains(t, out.String(), "Nothing to copy")
}

func TestRun_MissingSourceFails(t *testing.T) {
	exp := New(WithAssumeYes(true), WithOutput(&bytes.Buffer{}))

	_, err := exp.Run(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out"), library.YearFilter{})
	assert.ErrorIs(t, err, library.ErrSourceNotFound)
}

func TestShowPlan_OutputProtocol(t *testing.T) {
	source := setupLibrary(t)

	var out bytes.Buffer
	exp := New(WithOutput(&out))

	plan, err := exp.Scan(source, library.YearFilter{Min: 1980, Max: 1989})
	require.NoError(t, err)
	exp.ShowPlan(plan)

	text := out.String()
	assert.Contains(t, text, "Files to be copied:")
	assert.Contains(t, text, filepath.Join(source, "Artist", "Album [1985]", "Track.mp3"))
	assert.Contains(t, text, "Total number of files to be copied (including media/lyrics/art): 3")
	assert.Contains(t, text, "Total number of media files to be copied: 1")
	assert.Contains(t, text, "bytes (")
}

func TestExecute_FailFastReportsPath(t *testing.T) {
	source := setupLibrary(t)
	dest := filepath.Join(t.TempDir(), "out")

	exp := New(WithAssumeYes(true), WithOutput(&bytes.Buffer{}))

	plan, err := exp.Scan(source, library.YearFilter{})
	require.NoError(t, err)

	// Remove a planned file between scan and execute to force a copy error
	removed := plan.Entries[0].SourcePath
	require.NoError(t, os.Remove(removed))

	summary, err := exp.Execute(plan, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), removed)
	assert.Less(t, summary.FilesCopied, plan.Summary.TotalFiles)
}
