// Package testutil runs the formatter over golden test cases.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/donaldgifford/csfmt/pkg/diff"
)

// Update rewrites expected.cs with the current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

// FormatFunc formats the C# source read from path.
type FormatFunc func(path, input string) (string, error)

// RunGolden formats input.cs in dir and compares it with expected.cs.
// The expected text must also format to itself. A case directory may hold
// an .editorconfig with the options it needs.
func RunGolden(t *testing.T, dir string, formatFn FormatFunc) {
	t.Helper()

	inputPath := filepath.Join(dir, "input.cs")
	expectedPath := filepath.Join(dir, "expected.cs")

	got := format(t, formatFn, inputPath, read(t, inputPath))
	if *Update {
		if err := os.WriteFile(expectedPath, []byte(got), 0o644); err != nil {
			t.Fatalf("updating %s: %v", expectedPath, err)
		}
		t.Logf("updated %s", expectedPath)
		return
	}

	want := read(t, expectedPath)
	if got != want {
		t.Errorf("%s does not match expected.cs:\n%s", inputPath, unified("expected.cs", want, got))
	}
	// The formatted text is read from the input's directory so the same
	// .editorconfig applies.
	if again := format(t, formatFn, inputPath, want); again != want {
		t.Errorf("expected.cs changes when formatted again:\n%s", unified("expected.cs", want, again))
	}
}

// RunGoldenDir runs RunGolden as a subtest for every directory under
// testdataDir that holds an input.cs.
func RunGoldenDir(t *testing.T, testdataDir string, formatFn FormatFunc) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("reading %s: %v", testdataDir, err)
	}
	ran := 0
	for _, entry := range entries {
		dir := filepath.Join(testdataDir, entry.Name())
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, "input.cs")); err != nil {
			continue
		}
		ran++
		t.Run(entry.Name(), func(t *testing.T) {
			RunGolden(t, dir, formatFn)
		})
	}
	if ran == 0 {
		t.Fatalf("no golden cases under %s", testdataDir)
	}
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func format(t *testing.T, formatFn FormatFunc, path, input string) string {
	t.Helper()
	out, err := formatFn(path, input)
	if err != nil {
		t.Fatalf("formatting %s: %v", path, err)
	}
	return out
}

// unified renders the change from want to got.
func unified(name, want, got string) string {
	var b strings.Builder
	if err := diff.Write(&b, name, want, got, diff.Options{Context: diff.DefaultContext}); err != nil {
		return err.Error()
	}
	return b.String()
}
