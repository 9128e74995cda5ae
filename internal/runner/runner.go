// Package runner orchestrates the parse -> format -> output pipeline.
package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/csfmt/internal/config"
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/parser"
	"github.com/donaldgifford/csfmt/internal/rules"
	"github.com/donaldgifford/csfmt/pkg/diff"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFormatDiff = 1
	ExitError      = 2
)

// stdinName labels standard input in diffs.
const stdinName = "<stdin>"

// Options configures the runner behavior.
type Options struct {
	// Paths are files and directories. Directories are walked for files
	// with a configured extension. No paths means standard input.
	Paths []string

	Check      bool
	Diff       bool
	Write      bool
	ConfigPath string

	// Config overrides ConfigPath when set.
	Config *config.Config

	// Jobs bounds the files formatted at once. Zero uses the config
	// value, then GOMAXPROCS.
	Jobs int

	Color   bool
	Quiet   bool
	Verbose bool
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  logr.Logger
}

// Run executes the format pipeline and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			writeErr(opts.Stderr, "csfmt: %v\n", err)
			return ExitError
		}
	}
	p, err := New(cfg, opts.Logger)
	if err != nil {
		writeErr(opts.Stderr, "csfmt: %v\n", err)
		return ExitError
	}

	if len(opts.Paths) == 0 {
		return p.runStdin(ctx, opts)
	}
	return p.runFiles(ctx, opts)
}

// Pipeline formats source files with the options that apply to each one.
// It is safe for concurrent use.
type Pipeline struct {
	cfg      *config.Config
	resolver *config.Resolver
	filter   *config.PathFilter
	log      logr.Logger
}

// New returns a Pipeline for cfg. A zero logger discards output.
func New(cfg *config.Config, log logr.Logger) (*Pipeline, error) {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	filter, err := config.NewPathFilter(cfg.Runner)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:      cfg,
		resolver: config.NewResolver(cfg, log),
		filter:   filter,
		log:      log,
	}, nil
}

// Wanted reports whether path is a file the pipeline formats when it is
// found in a directory walk.
func (p *Pipeline) Wanted(path string) bool {
	return p.filter.Wanted(path)
}

// Excluded reports whether path matches an exclude pattern of the tool
// config.
func (p *Pipeline) Excluded(path string) bool {
	return p.filter.Excluded(path)
}

// Format formats src. The options are resolved for path; an empty path
// uses the defaults and the tool config only.
func (p *Pipeline) Format(ctx context.Context, path, src string) (string, error) {
	set, err := p.resolver.Options(path)
	if err != nil {
		return "", err
	}
	root := parser.Parse(src, parser.WithSymbols(set.Symbols()...))
	res, err := formatter.Format(ctx, root, set, formatter.Config{
		Strict:    p.cfg.Formatter.Strict,
		Logger:    p.log.WithValues("path", path),
		Providers: rules.Providers(),
	})
	if err != nil {
		return "", fmt.Errorf("formatting %s: %w", path, err)
	}
	return res.Text, nil
}

// FormatFile formats the file at path in place and reports whether it
// changed.
func (p *Pipeline) FormatFile(ctx context.Context, path string) (bool, error) {
	out, err := p.file(ctx, path)
	if err != nil {
		return false, err
	}
	if !out.changed {
		return false, nil
	}
	return true, write(path, out.output)
}

func (p *Pipeline) runStdin(ctx context.Context, opts *Options) int {
	src, err := io.ReadAll(opts.Stdin)
	if err != nil {
		writeErr(opts.Stderr, "csfmt: reading stdin: %v\n", err)
		return ExitError
	}

	input := string(src)
	output, err := p.Format(ctx, "", input)
	if err != nil {
		writeErr(opts.Stderr, "csfmt: %v\n", err)
		return ExitError
	}

	switch {
	case opts.Check:
		if input != output {
			return ExitFormatDiff
		}
	case opts.Diff:
		if input != output {
			err := diff.Write(opts.Stdout, stdinName, input, output, diff.Options{Context: diff.DefaultContext, Color: opts.Color})
			if err != nil {
				writeErr(opts.Stderr, "csfmt: writing diff: %v\n", err)
				return ExitError
			}
			return ExitFormatDiff
		}
	default:
		writeOut(opts.Stdout, output)
	}
	return ExitOK
}

// result is the outcome of formatting one file.
type result struct {
	path          string
	input, output string
	changed       bool
}

func (p *Pipeline) runFiles(ctx context.Context, opts *Options) int {
	files, err := p.expand(opts.Paths)
	exitCode := ExitOK
	if err != nil {
		for _, e := range multierr.Errors(err) {
			writeErr(opts.Stderr, "csfmt: %v\n", e)
		}
		exitCode = ExitError
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = p.cfg.Runner.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*result, len(files))
	errs := make([]error, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			// Per-file errors do not stop the group.
			results[i], errs[i] = p.file(gctx, path)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		writeErr(opts.Stderr, "csfmt: %v\n", err)
		return ExitError
	}

	var failed error
	for i, res := range results {
		if errs[i] != nil {
			failed = multierr.Append(failed, errs[i])
			continue
		}
		if code := p.report(opts, res); code > exitCode {
			exitCode = code
		}
	}
	if failed != nil {
		for _, e := range multierr.Errors(failed) {
			writeErr(opts.Stderr, "csfmt: %v\n", e)
		}
		exitCode = ExitError
	}
	p.log.V(1).Info("Run finished", "files", len(files), "errors", len(multierr.Errors(failed)), "exit", exitCode)
	return exitCode
}

// report prints or writes the result of one file and returns its exit
// code.
func (p *Pipeline) report(opts *Options, res *result) int {
	if opts.Verbose {
		writeErr(opts.Stderr, "%s\n", res.path)
	}

	switch {
	case opts.Check:
		if res.changed {
			if !opts.Quiet {
				writeErr(opts.Stderr, "%s\n", res.path)
			}
			return ExitFormatDiff
		}
		return ExitOK
	case opts.Diff:
		if res.changed {
			err := diff.Write(opts.Stdout, res.path, res.input, res.output, diff.Options{Context: diff.DefaultContext, Color: opts.Color})
			if err != nil {
				writeErr(opts.Stderr, "csfmt: writing diff for %s: %v\n", res.path, err)
				return ExitError
			}
			return ExitFormatDiff
		}
		return ExitOK
	}

	// Write mode (default for file args).
	if !res.changed {
		return ExitOK
	}
	if err := write(res.path, res.output); err != nil {
		writeErr(opts.Stderr, "csfmt: %v\n", err)
		return ExitError
	}
	return ExitOK
}

func (p *Pipeline) file(ctx context.Context, path string) (*result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p.log.V(2).Info("Formatting file", "path", path, "bytes", len(src))

	input := string(src)
	output, err := p.Format(ctx, path, input)
	if err != nil {
		return nil, err
	}
	return &result{path: path, input: input, output: output, changed: input != output}, nil
}

// expand replaces directories in paths with the wanted files below them.
// Files named explicitly are kept even without a configured extension.
func (p *Pipeline) expand(paths []string) ([]string, error) {
	var files []string
	var errs error
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			// Missing files surface when they are read.
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(sub string, d fs.DirEntry, err error) error {
			if err != nil {
				errs = multierr.Append(errs, err)
				return nil
			}
			if d.IsDir() {
				if sub != path && p.Excluded(sub+"/") {
					return filepath.SkipDir
				}
				return nil
			}
			if p.filter.Wanted(sub) {
				files = append(files, sub)
			}
			return nil
		})
		errs = multierr.Append(errs, err)
	}
	return files, errs
}

// write replaces the contents of path, keeping its permissions.
func write(path, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
