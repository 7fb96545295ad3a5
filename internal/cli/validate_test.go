package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sinks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateOnlyValidConfig(t *testing.T) {
	path := writeConfig(t, `
sinks:
  - name: digits
    file_name: out1.txt
    patterns: ['^[0-9]+$']
  - name: noise
    file_name: "null"
    patterns: ['DEBUG', 'TRACE']
    invert: true
`)

	stdout, _, err := execute(t, "", "-c", path, "-v")
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "✓ Configuration valid")
	assert.Contains(t, out, "digits -> out1.txt")
	assert.Contains(t, out, "patterns=1 invert=false")
	assert.Contains(t, out, "noise -> (discard)")
	assert.Contains(t, out, "patterns=2 invert=true")
}

func TestValidateOnlyCreatesNoFiles(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out1.txt")
	path := writeConfig(t, `
sinks:
  - name: digits
    file_name: `+outPath+`
    patterns: ['^[0-9]+$']
`)

	_, _, err := execute(t, "", "-c", path, "--validate-only")
	require.NoError(t, err)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "dry validation must not create output files")
}

func TestValidateOnlyBatchesErrors(t *testing.T) {
	path := writeConfig(t, `
sinks:
  - name: bad1
    file_name: a.txt
    patterns: ['([unclosed']
  - name: good
    file_name: b.txt
    patterns: ['fine']
  - name: bad2
    file_name: c.txt
    patterns: ['also(bad']
`)

	stdout, _, err := execute(t, "", "-c", path, "-v")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 error(s)")

	out := stdout.String()
	assert.Contains(t, out, "✗ Configuration invalid")
	assert.Contains(t, out, `"bad1"`)
	assert.Contains(t, out, `"bad2"`)
	assert.NotContains(t, out, `"good"`)
	assert.Equal(t, 2, strings.Count(out, "[E101]"))
}

func TestValidateOnlyNeverRoutes(t *testing.T) {
	path := writeConfig(t, `
sinks:
  - name: all
    file_name: "null"
    patterns: ['.*']
`)

	stdout, _, err := execute(t, "this line must not be consumed\n", "-c", path, "-v")
	require.NoError(t, err)
	assert.NotContains(t, stdout.String(), "this line")
}
