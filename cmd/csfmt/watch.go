package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/csfmt/internal/runner"
)

func newWatchCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Reformat files in place whenever they change",
		Long: `Watch directories and reformat every source file that is created or
written below them until interrupted. With no dirs, the working directory
is watched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			log := logger()
			p, err := runner.New(cfg, log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if f.quiet {
				out = io.Discard
			}
			return watch(cmd.Context(), p, args, out, log)
		},
	}
}

// watch reformats wanted files below dirs as they change. It returns nil
// when ctx is done.
func watch(ctx context.Context, p *runner.Pipeline, dirs []string, out io.Writer, log logr.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := addTree(w, p, dir); err != nil {
			return err
		}
	}
	log.V(1).Info("Watching", "dirs", dirs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "Watch error")
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			handle(ctx, w, p, ev, out, log)
		}
	}
}

func handle(ctx context.Context, w *fsnotify.Watcher, p *runner.Pipeline, ev fsnotify.Event, out io.Writer, log logr.Logger) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	info, err := os.Stat(ev.Name)
	if err != nil {
		// Removed again before we got to it.
		return
	}
	if info.IsDir() {
		if ev.Has(fsnotify.Create) {
			if err := addTree(w, p, ev.Name); err != nil {
				log.Error(err, "Watching new directory", "path", ev.Name)
			}
		}
		return
	}
	if !p.Wanted(ev.Name) {
		return
	}

	changed, err := p.FormatFile(ctx, ev.Name)
	if err != nil {
		log.Error(err, "Formatting file", "path", ev.Name)
		return
	}
	if changed {
		fmt.Fprintf(out, "formatted %s\n", ev.Name)
	}
}

// addTree watches dir and every directory below it that is not excluded.
func addTree(w *fsnotify.Watcher, p *runner.Pipeline, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && p.Excluded(path+"/") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
