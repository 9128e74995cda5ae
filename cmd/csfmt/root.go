package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"k8s.io/klog/v2"

	"github.com/donaldgifford/csfmt/internal/config"
	"github.com/donaldgifford/csfmt/internal/runner"
)

// rootFlags holds the flags shared by the root command and watch.
type rootFlags struct {
	check      bool
	diff       bool
	write      bool
	configPath string
	color      string
	jobs       int
	quiet      bool
	verbose    bool
}

func newRootCmd(code *int) *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "csfmt [flags] [paths...]",
		Short: "Format C# source files",
		Long: `Format C# source files and directories. With no paths, csfmt reads
standard input and writes the result to standard output. Options come from
.editorconfig files next to the sources and from csfmt.yml.`,
		Version:       fmt.Sprintf("%s (%s) %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := useColor(f.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			*code = runner.Run(cmd.Context(), &runner.Options{
				Paths:      args,
				Check:      f.check,
				Diff:       f.diff,
				Write:      f.write,
				ConfigPath: f.configPath,
				Jobs:       f.jobs,
				Color:      color,
				Quiet:      f.quiet,
				Verbose:    f.verbose,
				Stdin:      cmd.InOrStdin(),
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
				Logger:     logger(),
			})
			return nil
		},
	}
	cmd.SetVersionTemplate("csfmt {{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolVar(&f.check, "check", false, "exit 1 if any file is not formatted")
	flags.BoolVar(&f.diff, "diff", false, "print unified diff of changes")
	flags.BoolVarP(&f.write, "write", "w", false, "write result to file")
	flags.IntVarP(&f.jobs, "jobs", "j", 0, "files formatted in parallel (default GOMAXPROCS)")
	cmd.MarkFlagsMutuallyExclusive("check", "diff", "write")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&f.configPath, "config", "", "path to config file")
	persistent.StringVar(&f.color, "color", "auto", "colorize diffs (auto|always|never)")
	persistent.BoolVarP(&f.quiet, "quiet", "q", false, "suppress informational output")
	persistent.BoolVar(&f.verbose, "verbose", false, "print files as they are processed")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	persistent.AddGoFlagSet(klogFlags)

	cmd.AddCommand(newWatchCmd(f), newOptionsCmd(f))
	return cmd
}

// logger returns the klog backed logger used by library packages.
func logger() logr.Logger {
	return klog.NewKlogr()
}

// loadConfig loads the tool config named by --config, or the one found in
// the working directory.
func loadConfig(f *rootFlags) (*config.Config, error) {
	return config.Load(f.configPath)
}

// useColor resolves the --color mode for output written to w.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		file, ok := w.(*os.File)
		return ok && term.IsTerminal(int(file.Fd())), nil
	}
	return false, fmt.Errorf("invalid --color %q: want auto, always or never", mode)
}
