package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Formatter.Strict {
		t.Error("Strict: got true, want false")
	}
	if !cfg.Formatter.EditorConfig {
		t.Error("EditorConfig: got false, want true")
	}
	if len(cfg.Formatter.Options) != 0 {
		t.Errorf("Options: got %v, want empty", cfg.Formatter.Options)
	}
	if cfg.Runner.Jobs != 0 {
		t.Errorf("Jobs: got %d, want 0", cfg.Runner.Jobs)
	}
	if !slices.Equal(cfg.Runner.Extensions, []string{".cs"}) {
		t.Errorf("Extensions: got %v, want [.cs]", cfg.Runner.Extensions)
	}
	if !slices.Equal(cfg.Runner.Exclude, []string{"**/bin/**", "**/obj/**"}) {
		t.Errorf("Exclude: got %v", cfg.Runner.Exclude)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")

	yaml := `formatter:
  strict: true
  options:
    csharp_new_line_before_open_brace: none
    csharp_space_after_cast: true
runner:
  jobs: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.Formatter.Strict {
		t.Error("Strict: got false, want true")
	}
	if got := cfg.Formatter.Options["csharp_new_line_before_open_brace"]; got != "none" {
		t.Errorf("brace option: got %q, want %q", got, "none")
	}
	if got := cfg.Formatter.Options["csharp_space_after_cast"]; got != "true" {
		t.Errorf("cast option: got %q, want %q", got, "true")
	}
	if cfg.Runner.Jobs != 3 {
		t.Errorf("Jobs: got %d, want 3", cfg.Runner.Jobs)
	}

	// Verify unspecified fields retain defaults.
	if !cfg.Formatter.EditorConfig {
		t.Error("EditorConfig: got false, want true (default)")
	}
	if !slices.Equal(cfg.Runner.Extensions, []string{".cs"}) {
		t.Errorf("Extensions: got %v, want [.cs] (default)", cfg.Runner.Extensions)
	}
}

func TestLoadNoConfigReturnsDefaults(t *testing.T) {
	// Use an empty temp dir so no config file is discovered.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	if cfg.Formatter.Strict != want.Formatter.Strict || cfg.Runner.Jobs != want.Runner.Jobs {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestDiscoverPriority(t *testing.T) {
	dir := t.TempDir()

	content := []byte("runner:\n  jobs: 2\n")

	// Create all four files; csfmt.yml (first in order) should win.
	for _, name := range []string{"csfmt.yml", "csfmt.yaml", ".csfmt.yml", ".csfmt.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for _, next := range []string{"csfmt.yml", "csfmt.yaml", ".csfmt.yml", ".csfmt.yaml"} {
		got := Discover(dir)
		want := filepath.Join(dir, next)
		if got != want {
			t.Errorf("Discover = %q, want %q", got, want)
		}
		os.Remove(want)
	}

	if got := Discover(dir); got != "" {
		t.Errorf("Discover in empty dir: got %q, want empty string", got)
	}
}

func TestLoadDiscovery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "csfmt.yml")

	yaml := `runner:
  extensions: [".cs", ".csx"]
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(cfg.Runner.Extensions, []string{".cs", ".csx"}) {
		t.Errorf("Extensions: got %v", cfg.Runner.Extensions)
	}

	// Unspecified fields should retain defaults.
	if len(cfg.Runner.Exclude) != 2 {
		t.Errorf("Exclude: got %v, want defaults", cfg.Runner.Exclude)
	}
}

func TestDiscoverParentDirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src", "App")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, ".csfmt.yml")
	if err := os.WriteFile(want, []byte("runner:\n  jobs: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Discover(sub); got != want {
		t.Errorf("Discover = %q, want %q", got, want)
	}

	nearer := filepath.Join(sub, "csfmt.yaml")
	if err := os.WriteFile(nearer, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Discover(sub); got != nearer {
		t.Errorf("Discover = %q, want the nearer %q", got, nearer)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{"negative jobs", "runner:\n  jobs: -1\n", []string{"runner.jobs"}},
		{"extension without dot", "runner:\n  extensions: [cs]\n", []string{`"cs"`}},
		{"bad exclude glob", "runner:\n  exclude: [\"[bin\"]\n", []string{"runner.exclude"}},
		{
			"every problem reported",
			"runner:\n  jobs: -2\n  extensions: [cs, .cs, csx]\n",
			[]string{"runner.jobs", `"cs"`, `"csx"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "csfmt.yml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			for _, want := range tt.want {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %s", err, want)
				}
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")

	if err := os.WriteFile(path, []byte("{{{{not valid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	if err == nil {
		t.Error("expected error for missing explicit path, got nil")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yml")

	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Formatter.Options == nil {
		t.Error("Options: got nil map for empty file")
	}
	if !cfg.Formatter.EditorConfig {
		t.Error("EditorConfig: got false, want true (default)")
	}
}

func TestLoadNullOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "null.yml")

	if err := os.WriteFile(path, []byte("formatter:\n  options:\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Formatter.Options == nil {
		t.Error("Options: got nil map, want empty map")
	}
}
