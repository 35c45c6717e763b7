package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/shapes"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shapes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/catalog.db
scripts:
  dir: ./scripts
logging:
  level: debug
  encoding: json
output:
  format: json
report:
  - kind: rectangle
    width: 2
    height: 3
  - kind: circle
    radius: 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.Equal(t, "./scripts", cfg.Scripts.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Encoding)
	assert.Equal(t, "json", cfg.Output.Format)

	report, err := cfg.ReportShapes()
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Equal(t, shapes.KindRectangle, report[0].Kind())
	assert.Equal(t, 6.0, report[0].Area())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHAPES_DB", "/env/catalog.db")
	t.Setenv("SHAPES_FORMAT", "json")
	t.Setenv("SHAPES_LOG_LEVEL", "error")
	t.Setenv("SHAPES_SCRIPTS_DIR", "/env/scripts")

	path := writeConfig(t, "database:\n  path: /file/catalog.db\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/catalog.db", cfg.Database.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "/env/scripts", cfg.Scripts.Dir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "database: [", "failed to parse config"},
		{"bad format", "output:\n  format: xml\n", "invalid output format"},
		{"bad level", "logging:\n  level: loud\n", "invalid log level"},
		{"bad encoding", "logging:\n  encoding: logfmt\n", "invalid log encoding"},
		{"bad report shape", "report:\n  - kind: circle\n    radius: -1\n", "report shape 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_InvalidLevelFromEnv(t *testing.T) {
	t.Setenv("SHAPES_LOG_LEVEL", "chatty")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "chatty"`)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Report = []shapes.Spec{{Kind: "circle", Radius: 5}}
	path := filepath.Join(t.TempDir(), "nested", "shapes.yaml")

	require.NoError(t, cfg.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: circle")
}

func TestReportShapes_Default(t *testing.T) {
	t.Parallel()
	got, err := DefaultConfig().ReportShapes()
	require.NoError(t, err)
	assert.Equal(t, shapes.Areas(shapes.DefaultShapes()), shapes.Areas(got))
}
