package runner_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const (
	unformatted = "class C\n{\nint x;\n}\n"
	formatted   = "class C\n{\n    int x;\n}\n"
)

// binaryPath builds the csfmt binary and returns its path.
func binaryPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "csfmt")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}

	cmd := exec.CommandContext(t.Context(), "go", "build", "-o", bin, "../../cmd/csfmt")
	cmd.Dir = filepath.Join(projectRoot(t), "internal", "runner")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// exitCode returns the exit status of a finished command.
func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("unexpected error: %v", err)
	}
	return exitErr.ExitCode()
}

func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	bin := binaryPath(t)

	t.Run("stdin format", func(t *testing.T) {
		cmd := exec.CommandContext(t.Context(), bin)
		cmd.Stdin = strings.NewReader(unformatted)
		out, err := cmd.Output()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != formatted {
			t.Errorf("stdin format: got %q, want %q", string(out), formatted)
		}
	})

	t.Run("check formatted", func(t *testing.T) {
		cmd := exec.CommandContext(t.Context(), bin, "--check")
		cmd.Stdin = strings.NewReader(formatted)
		if code := exitCode(t, cmd.Run()); code != 0 {
			t.Errorf("check formatted: expected exit 0, got %d", code)
		}
	})

	t.Run("check unformatted", func(t *testing.T) {
		cmd := exec.CommandContext(t.Context(), bin, "--check")
		cmd.Stdin = strings.NewReader(unformatted)
		if code := exitCode(t, cmd.Run()); code != 1 {
			t.Errorf("check unformatted: expected exit 1, got %d", code)
		}
	})

	t.Run("diff", func(t *testing.T) {
		cmd := exec.CommandContext(t.Context(), bin, "--diff", "--color=never")
		cmd.Stdin = strings.NewReader(unformatted)
		out, err := cmd.Output()
		if code := exitCode(t, err); code != 1 {
			t.Errorf("diff with changes: expected exit 1, got %d", code)
		}
		if !strings.Contains(string(out), "-int x;") || !strings.Contains(string(out), "+    int x;") {
			t.Errorf("diff missing changed lines: %s", out)
		}
	})

	t.Run("write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "C.cs")
		if err := os.WriteFile(path, []byte(unformatted), 0o644); err != nil {
			t.Fatal(err)
		}
		cmd := exec.CommandContext(t.Context(), bin, path)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("write: %v\n%s", err, out)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != formatted {
			t.Errorf("file after write: got %q", string(data))
		}
	})

	t.Run("version", func(t *testing.T) {
		out, err := exec.CommandContext(t.Context(), bin, "--version").Output()
		if err != nil {
			t.Fatalf("version: %v", err)
		}
		if !strings.HasPrefix(string(out), "csfmt ") {
			t.Errorf("version: got %q", string(out))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cmd := exec.CommandContext(t.Context(), bin, "/nonexistent/C.cs")
		if code := exitCode(t, cmd.Run()); code != 2 {
			t.Errorf("missing file: expected exit 2, got %d", code)
		}
	})

	t.Run("explicit config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yml")
		cfg := "formatter:\n  options:\n    csharp_new_line_before_open_brace: none\n"
		if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
			t.Fatal(err)
		}
		cmd := exec.CommandContext(t.Context(), bin, "--config", configPath)
		cmd.Stdin = strings.NewReader(unformatted)
		out, err := cmd.Output()
		if err != nil {
			t.Fatalf("config: %v", err)
		}
		if want := "class C {\n    int x;\n}\n"; string(out) != want {
			t.Errorf("config braces: got %q, want %q", string(out), want)
		}
	})

	t.Run("multiple files", func(t *testing.T) {
		dir := t.TempDir()
		good := filepath.Join(dir, "Good.cs")
		bad := filepath.Join(dir, "Bad.cs")
		if err := os.WriteFile(good, []byte(formatted), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(bad, []byte(unformatted), 0o644); err != nil {
			t.Fatal(err)
		}
		cmd := exec.CommandContext(t.Context(), bin, "--check", good, bad)
		if code := exitCode(t, cmd.Run()); code != 1 {
			t.Errorf("check mixed: expected exit 1, got %d", code)
		}
	})
}
