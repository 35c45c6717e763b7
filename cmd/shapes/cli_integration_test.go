package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against an isolated database and
// config, returning stdout. Not parallel: cobra flags are package globals.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	full := append([]string{
		"--db", filepath.Join(dir, "catalog.db"),
		"--config", filepath.Join(dir, "config.yaml"),
	}, args...)
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCLI_ReportDefault(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, dir, "--format", "text", "report")
	require.NoError(t, err)
	assert.Equal(t, "This is a Circle. Area: 78.53981633974483\nThis is a Rectangle. Area: 24\n", out)
}

func TestCLI_ReportFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
report:
  - kind: rectangle
    width: 2
    height: 5
`), 0o644))

	out, err := execute(t, dir, "--format", "text", "report")
	require.NoError(t, err)
	assert.Equal(t, "This is a Rectangle. Area: 10\n", out)
}

func TestCLI_AddListExportImport(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "--format", "json", "add", "circle", "5")
	require.NoError(t, err)
	_, err = execute(t, dir, "--format", "json", "add", "rectangle", "4", "6")
	require.NoError(t, err)

	out, err := execute(t, dir, "--format", "json", "list")
	require.NoError(t, err)

	var listed struct {
		Command    string     `json:"command"`
		Results    []CLIShape `json:"results"`
		TotalCount int        `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.Equal(t, "list", listed.Command)
	assert.Equal(t, 2, listed.TotalCount)
	require.Len(t, listed.Results, 2)
	assert.Equal(t, "Circle", listed.Results[0].Kind)
	assert.InDelta(t, 78.53981633974483, listed.Results[0].Area, 1e-12)
	assert.Equal(t, 24.0, listed.Results[1].Area)

	exported, err := execute(t, dir, "export")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"kind":"circle","radius":5},{"kind":"rectangle","width":4,"height":6}]`, exported)

	other := t.TempDir()
	specPath := filepath.Join(other, "shapes.json")
	require.NoError(t, os.WriteFile(specPath, []byte(exported), 0o644))
	_, err = execute(t, other, "--format", "json", "import", specPath)
	require.NoError(t, err)

	t.Cleanup(func() { flagStored = false })
	out, err = execute(t, other, "--format", "text", "report", "--stored")
	require.NoError(t, err)
	assert.Equal(t, "This is a Circle. Area: 78.53981633974483\nThis is a Rectangle. Area: 24\n", out)
}

func TestCLI_AddRejectsInvalidDimension(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "--format", "text", "add", "circle", "--", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radius must be a positive finite number")
}

func TestCLI_LoadEmbeddedDefault(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "--format", "json", "load", "default")
	require.NoError(t, err)
	assert.Contains(t, out, `"added": 2`)

	out, err = execute(t, dir, "--format", "json", "load", "default")
	require.NoError(t, err)
	assert.Contains(t, out, `"skipped": true`)

	out, err = execute(t, dir, "--format", "text", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Circle")
	assert.Contains(t, out, "Rectangle")
}

func TestCLI_ReportStoredEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { flagStored = false })

	out, err := execute(t, dir, "--format", "text", "report", "--stored")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCLI_RemoveMissingIDRemovesNothing(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "--format", "json", "add", "circle", "5")
	require.NoError(t, err)

	_, err = execute(t, dir, "--format", "text", "remove", "1", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shape with id [99], nothing removed")

	out, err := execute(t, dir, "--format", "json", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_count": 1`)

	out, err = execute(t, dir, "--format", "text", "remove", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, "removed 1 shapes\n", out)
}
