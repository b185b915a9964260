package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/domain"
)

func TestNewExportCommand_Stdout(t *testing.T) {
	c, _ := newTestContainer(t)

	cmd := newExportCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, "Design landing page")
	assert.Contains(t, out, "exportedAt: 2025-05-12T14:30:00Z")
}

func TestNewExportCommand_JSON(t *testing.T) {
	c, _ := newTestContainer(t)

	cmd := newExportCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"columns"`)
}

func TestNewExportCommand_UnsupportedFormat(t *testing.T) {
	c, _ := newTestContainer(t)

	cmd := newExportCommand(c)
	cmd.SetArgs([]string{"--format", "xml"})

	assert.ErrorIs(t, cmd.Execute(), domain.ErrUnsupportedFormat)
}

func TestExportImport_RoundTrip(t *testing.T) {
	// Setup: export the sample board to a file
	src, _ := newTestContainer(t)
	require.NoError(t, src.Store.DeleteTask("task-2"))
	path := filepath.Join(t.TempDir(), "board.json")

	export := newExportCommand(src)
	export.SetOut(&bytes.Buffer{})
	export.SetErr(&bytes.Buffer{})
	export.SetArgs([]string{"-o", path})
	require.NoError(t, export.Execute())

	// Execute: import into a fresh board
	dst, state := newTestContainer(t)
	writesBefore := state.Writes()

	imp := newImportCommand(dst)
	var buf bytes.Buffer
	imp.SetOut(&buf)
	imp.SetArgs([]string{path})
	require.NoError(t, imp.Execute())

	// Assert
	assert.Contains(t, buf.String(), "Imported 3 column(s) and 3 task(s)")
	_, ok := dst.Store.Task("task-2")
	assert.False(t, ok)
	assert.Greater(t, state.Writes(), writesBefore)
}

func TestNewImportCommand_InvalidFileLeavesBoard(t *testing.T) {
	c, _ := newTestContainer(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns:\n  - id: a\ntasks:\n  - id: t1\n    title: x\n    columnId: nowhere\n"), 0o600))

	cmd := newImportCommand(c)
	cmd.SetArgs([]string{path})

	assert.ErrorIs(t, cmd.Execute(), domain.ErrInvalidBoardFile)
	assert.Len(t, c.Store.Tasks(), 4)
}

func TestNewImportCommand_MissingFile(t *testing.T) {
	c, _ := newTestContainer(t)

	cmd := newImportCommand(c)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.yaml")})

	assert.ErrorContains(t, cmd.Execute(), "open")
}

func TestNewResetCommand(t *testing.T) {
	c, _ := newTestContainer(t)
	require.NoError(t, c.Store.DeleteTask("task-1"))

	noForce := newResetCommand(c)
	noForce.SetArgs([]string{})
	assert.Error(t, noForce.Execute())
	assert.Len(t, c.Store.Tasks(), 3)

	cmd := newResetCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--force"})
	require.NoError(t, cmd.Execute())

	assert.Len(t, c.Store.Tasks(), 4)
	assert.Contains(t, buf.String(), "Board reset")
}

func TestNewSyncCommand_RequiresGitBackend(t *testing.T) {
	c, _ := newTestContainer(t)

	for _, sub := range []string{"push", "fetch"} {
		cmd := newSyncCommand(c)
		cmd.SetArgs([]string{sub})
		assert.ErrorIs(t, cmd.Execute(), errSyncUnsupported, sub)
	}
}
