package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/csfmt/internal/options"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEditorConfigSections(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EditorConfigName), `root = true

[*]
indent_style = space
indent_size = 2

# C# files
[*.cs]
indent_size = 4
csharp_new_line_before_open_brace = methods, types ; kept verbatim

[*.{cs,csx}]
Csharp_Space_After_Cast = true

[/src/generated/**]
csharp_preserve_single_line_blocks = false

[tests/*.cs]
csharp_indent_labels = flush_left
`)

	ec := NewEditorConfig(logr.Discard())

	got, err := ec.Settings(filepath.Join(dir, "src", "generated", "A.cs"))
	require.NoError(t, err)
	want := map[string]string{
		"indent_style":                       "space",
		"indent_size":                        "4",
		"csharp_new_line_before_open_brace":  "methods, types ; kept verbatim",
		"csharp_space_after_cast":            "true",
		"csharp_preserve_single_line_blocks": "false",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	got, err = ec.Settings(filepath.Join(dir, "tests", "B.cs"))
	require.NoError(t, err)
	assert.Equal(t, "flush_left", got["csharp_indent_labels"])
	assert.NotContains(t, got, "csharp_preserve_single_line_blocks")

	// A file in a nested tests directory does not match the anchored pattern.
	got, err = ec.Settings(filepath.Join(dir, "src", "tests", "C.cs"))
	require.NoError(t, err)
	assert.NotContains(t, got, "csharp_indent_labels")

	got, err = ec.Settings(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "2", got["indent_size"])
	assert.NotContains(t, got, "csharp_space_after_cast")
}

func TestEditorConfigNearestWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EditorConfigName), `root = true
[*.cs]
indent_size = 2
csharp_indent_braces = true
`)
	writeFile(t, filepath.Join(dir, "sub", EditorConfigName), `[*.cs]
indent_size = 8
`)

	ec := NewEditorConfig(logr.Discard())
	got, err := ec.Settings(filepath.Join(dir, "sub", "X.cs"))
	require.NoError(t, err)
	assert.Equal(t, "8", got["indent_size"])
	assert.Equal(t, "true", got["csharp_indent_braces"])
}

func TestEditorConfigRootStopsWalk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EditorConfigName), `[*]
indent_size = 3
`)
	writeFile(t, filepath.Join(dir, "proj", EditorConfigName), `root = true
[*.cs]
tab_width = 8
`)

	ec := NewEditorConfig(logr.Discard())
	got, err := ec.Settings(filepath.Join(dir, "proj", "X.cs"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"tab_width": "8"}, got)
}

func TestEditorConfigIsCached(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, EditorConfigName)
	writeFile(t, path, "root = true\n[*.cs]\nindent_size = 2\n")

	ec := NewEditorConfig(logr.Discard())
	file := filepath.Join(dir, "X.cs")
	got, err := ec.Settings(file)
	require.NoError(t, err)
	assert.Equal(t, "2", got["indent_size"])

	// A rewrite within the cache lifetime is not observed.
	writeFile(t, path, "root = true\n[*.cs]\nindent_size = 6\n")
	got, err = ec.Settings(file)
	require.NoError(t, err)
	assert.Equal(t, "2", got["indent_size"])

	// A new resolver reads the file again.
	got, err = NewEditorConfig(logr.Discard()).Settings(file)
	require.NoError(t, err)
	assert.Equal(t, "6", got["indent_size"])
}

func TestResolverLayersToolOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EditorConfigName), `root = true
[*.cs]
indent_size = 2
csharp_space_after_comma = false
`)

	cfg := DefaultConfig()
	cfg.Formatter.Options["csharp_space_after_comma"] = "true"

	set, err := NewResolver(cfg, logr.Discard()).Options(filepath.Join(dir, "X.cs"))
	require.NoError(t, err)
	assert.Equal(t, 2, set.IndentSize())
	assert.True(t, set.Bool(options.SpaceAfterComma))

	// Without editorconfig only the tool options apply.
	cfg.Formatter.EditorConfig = false
	set, err = NewResolver(cfg, logr.Discard()).Options(filepath.Join(dir, "X.cs"))
	require.NoError(t, err)
	assert.Equal(t, 4, set.IndentSize())

	// Stdin skips editorconfig.
	cfg.Formatter.EditorConfig = true
	set, err = NewResolver(cfg, logr.Discard()).Options("")
	require.NoError(t, err)
	assert.Equal(t, 4, set.IndentSize())
}

func TestPathFilter(t *testing.T) {
	t.Parallel()

	f, err := NewPathFilter(DefaultConfig().Runner)
	require.NoError(t, err)

	tests := map[string]bool{
		"Program.cs":             true,
		"src/App/Program.cs":     true,
		"src/App/Program.CS":     true,
		"src/App/bin/Debug/x.cs": false,
		"obj/x.cs":               false,
		"/abs/proj/obj/x.cs":     false,
		"README.md":              false,
		"src/binary/x.cs":        true,
	}
	for path, want := range tests {
		assert.Equal(t, want, f.Wanted(path), path)
	}
}
