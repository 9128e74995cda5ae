package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/gobwas/glob"

	"github.com/donaldgifford/csfmt/internal/options"
)

// Resolver turns a file path into the option set used to format it.
type Resolver struct {
	cfg    *Config
	editor *EditorConfig
}

// NewResolver returns a Resolver for cfg.
func NewResolver(cfg *Config, log logr.Logger) *Resolver {
	r := &Resolver{cfg: cfg}
	if cfg.Formatter.EditorConfig {
		r.editor = NewEditorConfig(log)
	}
	return r
}

// Options returns the options for file: defaults, then .editorconfig, then
// the formatter options of the tool config. An empty file name (stdin)
// skips .editorconfig lookup.
func (r *Resolver) Options(file string) (*options.Set, error) {
	set := options.Default()
	if file != "" && r.editor != nil {
		settings, err := r.editor.Settings(file)
		if err != nil {
			return nil, err
		}
		set = set.Apply(settings)
	}
	return set.Apply(r.cfg.Formatter.Options), nil
}

// PathFilter selects the files a directory walk formats.
type PathFilter struct {
	extensions []string
	exclude    []glob.Glob
}

// NewPathFilter compiles the runner's extension list and exclude globs.
func NewPathFilter(rc RunnerConfig) (*PathFilter, error) {
	f := &PathFilter{extensions: rc.Extensions}
	for _, p := range rc.Exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling exclude pattern %q: %w", p, err)
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// Excluded reports whether path matches an exclude pattern. The path is
// matched with and without a leading "/" so that "**/bin/**" also covers
// a relative "bin/x.cs".
func (f *PathFilter) Excluded(path string) bool {
	p := filepath.ToSlash(path)
	for _, g := range f.exclude {
		if g.Match(p) || g.Match("/"+strings.TrimPrefix(p, "/")) {
			return true
		}
	}
	return false
}

// Wanted reports whether a file with this path should be formatted.
func (f *PathFilter) Wanted(path string) bool {
	if f.Excluded(path) {
		return false
	}
	ext := filepath.Ext(path)
	for _, e := range f.extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
