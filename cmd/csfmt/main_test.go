package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/csfmt/internal/config"
	"github.com/donaldgifford/csfmt/internal/runner"
)

const (
	unformatted = "class C\n{\nint x;\n}\n"
	formatted   = "class C\n{\n    int x;\n}\n"
)

func execute(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunStdin(t *testing.T) {
	code, stdout, _ := execute(t, unformatted)
	assert.Equal(t, runner.ExitOK, code)
	assert.Equal(t, formatted, stdout)

	code, _, _ = execute(t, unformatted, "--check")
	assert.Equal(t, runner.ExitFormatDiff, code)

	code, stdout, _ = execute(t, unformatted, "--diff", "--color", "never")
	assert.Equal(t, runner.ExitFormatDiff, code)
	assert.Contains(t, stdout, "+    int x;\n")
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "C.cs")
	require.NoError(t, os.WriteFile(path, []byte(unformatted), 0o644))

	code, _, stderr := execute(t, "", "-w", "-j", "2", path)
	require.Equal(t, runner.ExitOK, code, stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, formatted, string(data))
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := execute(t, "", "--version")
	assert.Equal(t, runner.ExitOK, code)
	assert.Equal(t, "csfmt dev (none) unknown\n", stdout)
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad color", []string{"--color", "sometimes"}, "invalid --color"},
		{"exclusive modes", []string{"--check", "--diff"}, "check"},
		{"unknown flag", []string{"--bogus"}, "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(t, unformatted, tt.args...)
			assert.Equal(t, runner.ExitError, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer

	on, err := useColor("always", &buf)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = useColor("never", &buf)
	require.NoError(t, err)
	assert.False(t, on)

	on, err = useColor("auto", &buf)
	require.NoError(t, err)
	assert.False(t, on, "a buffer is not a terminal")

	_, err = useColor("rainbow", &buf)
	assert.Error(t, err)
}

func TestOptionsCommand(t *testing.T) {
	code, stdout, _ := execute(t, "", "options")
	require.Equal(t, runner.ExitOK, code)
	assert.Contains(t, stdout, "# indentation\n")
	assert.Regexp(t, `csharp_indent_labels\s+enum\s+one_less_than_current\s+one_less_than_current\|flush_left\|no_change`, stdout)
	assert.Regexp(t, `csharp_new_line_before_open_brace\s+flags\s+all\s+types,`, stdout)
	assert.Equal(t, 1, strings.Count(stdout, "# indentation\n"))
}

func TestOptionsCommandFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"),
		[]byte("root = true\n\n[*.cs]\ncsharp_indent_labels = flush_left\n"), 0o644))

	code, stdout, stderr := execute(t, "", "options", "--file", filepath.Join(dir, "C.cs"))
	require.Equal(t, runner.ExitOK, code, stderr)
	assert.Regexp(t, `csharp_indent_labels\s+enum\s+flush_left\s`, stdout)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "C.cs")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	cfg := config.DefaultConfig()
	cfg.Formatter.EditorConfig = false
	p, err := runner.New(cfg, logr.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() { done <- watch(ctx, p, []string{dir}, &out, logr.Discard()) }()

	// The watcher may not be registered yet, so the file is rewritten
	// until the change is picked up.
	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		if err == nil && string(data) == formatted {
			return true
		}
		_ = os.WriteFile(path, []byte(unformatted), 0o644)
		return false
	}, 10*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Contains(t, out.String(), "formatted "+path)
}
