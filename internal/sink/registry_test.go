package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsink-io/rsink/internal/config"
)

func decl(name, fileName string, patterns ...string) config.Sink {
	return config.Sink{Name: name, FileName: fileName, Patterns: patterns}
}

func TestBuildValidRegistry(t *testing.T) {
	dir := t.TempDir()
	doc := &config.Document{Sinks: []config.Sink{
		decl("digits", "out1.txt", "^[0-9]+$"),
		decl("noise", config.DiscardSentinel, "DEBUG", "TRACE"),
	}}

	reg, err := Build(doc, BuildOptions{BaseDir: dir})
	require.NoError(t, err)
	defer reg.Close()

	require.Len(t, reg.Sinks, 2)
	assert.Equal(t, "digits", reg.Sinks[0].Name)
	assert.IsType(t, &File{}, reg.Sinks[0].Dest)
	assert.Equal(t, Discard, reg.Sinks[1].Dest)

	_, err = os.Stat(filepath.Join(dir, "out1.txt"))
	assert.NoError(t, err, "file destination should be created at build time")
}

func TestBuildBatchesPatternErrors(t *testing.T) {
	dir := t.TempDir()
	doc := &config.Document{Sinks: []config.Sink{
		decl("bad1", "a.txt", "([unclosed"),
		decl("good", "b.txt", "fine.*"),
		decl("bad2", "c.txt", "also(bad"),
	}}

	reg, err := Build(doc, BuildOptions{BaseDir: dir})
	require.Nil(t, reg)
	require.Error(t, err)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	require.Len(t, buildErr.Errors, 2, "both bad sinks reported in one pass")
	assert.Equal(t, "bad1", buildErr.Errors[0].Sink)
	assert.Equal(t, ErrInvalidPattern, buildErr.Errors[0].Code)
	assert.Equal(t, "bad2", buildErr.Errors[1].Sink)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no output file may exist after a failed build")
}

func TestBuildReportsEveryBadPatternInOneSink(t *testing.T) {
	doc := &config.Document{Sinks: []config.Sink{
		decl("multi", config.DiscardSentinel, "(a", "ok", "(b"),
	}}

	_, err := Build(doc, BuildOptions{DryRun: true})
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	require.Len(t, buildErr.Errors, 2)
	assert.Equal(t, "(a", buildErr.Errors[0].Pattern)
	assert.Equal(t, "(b", buildErr.Errors[1].Pattern)
}

func TestBuildRejectsEmptyPatternList(t *testing.T) {
	doc := &config.Document{Sinks: []config.Sink{
		{Name: "empty", FileName: config.DiscardSentinel},
	}}

	_, err := Build(doc, BuildOptions{DryRun: true})
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	require.Len(t, buildErr.Errors, 1)
	assert.Equal(t, ErrNoPatterns, buildErr.Errors[0].Code)
}

func TestBuildRejectsEmptyName(t *testing.T) {
	doc := &config.Document{Sinks: []config.Sink{
		{Name: "", FileName: config.DiscardSentinel, Patterns: []string{"x"}},
	}}

	_, err := Build(doc, BuildOptions{DryRun: true})
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	require.Len(t, buildErr.Errors, 1)
	assert.Equal(t, ErrEmptyName, buildErr.Errors[0].Code)
	assert.Equal(t, "sink[0]", buildErr.Errors[0].Sink)
}

func TestBuildDryRunCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	doc := &config.Document{Sinks: []config.Sink{
		decl("digits", "out1.txt", "^[0-9]+$"),
		decl("rest", filepath.Join("deep", "nested", "out2.txt"), ".*"),
	}}

	reg, err := Build(doc, BuildOptions{DryRun: true, BaseDir: dir})
	require.NoError(t, err)
	defer reg.Close()

	require.Len(t, reg.Sinks, 2)
	for _, s := range reg.Sinks {
		assert.Equal(t, Discard, s.Dest)
	}

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestBuildCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	doc := &config.Document{Sinks: []config.Sink{
		decl("nested", filepath.Join("sub", "dir", "out.txt"), ".*"),
	}}

	reg, err := Build(doc, BuildOptions{BaseDir: dir})
	require.NoError(t, err)
	defer reg.Close()

	_, statErr := os.Stat(filepath.Join(dir, "sub", "dir", "out.txt"))
	assert.NoError(t, statErr)
}

func TestBuildFileCreationFailureIdentifiesSink(t *testing.T) {
	dir := t.TempDir()
	// A file where a parent directory is needed makes MkdirAll fail.
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	doc := &config.Document{Sinks: []config.Sink{
		decl("stuck", filepath.Join("blocked", "out.txt"), ".*"),
	}}

	_, err := Build(doc, BuildOptions{BaseDir: dir})
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	require.Len(t, buildErr.Errors, 1)
	assert.Equal(t, ErrCreateFile, buildErr.Errors[0].Code)
	assert.Equal(t, "stuck", buildErr.Errors[0].Sink)
	assert.Contains(t, buildErr.Errors[0].Path, "out.txt")
}

func TestBuildPermitsDuplicateNames(t *testing.T) {
	doc := &config.Document{Sinks: []config.Sink{
		decl("dup", config.DiscardSentinel, "a"),
		decl("dup", config.DiscardSentinel, "b"),
	}}

	reg, err := Build(doc, BuildOptions{DryRun: true})
	require.NoError(t, err)
	require.Len(t, reg.Sinks, 2)
}

func TestBuildPreservesDeclarationOrder(t *testing.T) {
	doc := &config.Document{Sinks: []config.Sink{
		decl("third", config.DiscardSentinel, "c"),
		decl("first", config.DiscardSentinel, "a"),
		decl("second", config.DiscardSentinel, "b"),
	}}

	reg, err := Build(doc, BuildOptions{DryRun: true})
	require.NoError(t, err)

	names := make([]string, len(reg.Sinks))
	for i, s := range reg.Sinks {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"third", "first", "second"}, names)
}

func TestSinkEffectiveMatch(t *testing.T) {
	m, errs := CompileMatcher([]string{"^$"})
	require.Nil(t, errs)

	plain := &Sink{Name: "empty", Matcher: m, Dest: Discard}
	inverted := &Sink{Name: "not_empty", Matcher: m, Invert: true, Dest: Discard}

	for _, line := range []string{"", "x", "  ", "😎"} {
		assert.Equal(t, !plain.Matches([]byte(line)), inverted.Matches([]byte(line)),
			"invert must be the exact negation for %q", line)
	}
}
