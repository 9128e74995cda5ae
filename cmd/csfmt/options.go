package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/csfmt/internal/config"
	"github.com/donaldgifford/csfmt/internal/options"
)

func newOptionsCmd(f *rootFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List formatting options",
		Long: `List every formatting option with its .editorconfig key, kind, default
and accepted values. With --file, the value column shows the value that
applies to that file instead of the default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := options.Default()
			if file != "" {
				cfg, err := loadConfig(f)
				if err != nil {
					return err
				}
				if set, err = config.NewResolver(cfg, logger()).Options(file); err != nil {
					return err
				}
			}
			return printOptions(cmd.OutOrStdout(), set)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "show the values that apply to this file")
	return cmd
}

// printOptions writes the option table grouped by section, in the order
// the sections first appear.
func printOptions(w io.Writer, set *options.Set) error {
	var sections []string
	bySection := map[string][]options.Descriptor{}
	for _, d := range options.All() {
		if _, ok := bySection[d.Section]; !ok {
			sections = append(sections, d.Section)
		}
		bySection[d.Section] = append(bySection[d.Section], d)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s\n", section)
		for _, d := range bySection[section] {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Key, d.Kind, set.Value(d.ID), vocabulary(d))
		}
	}
	return tw.Flush()
}

func vocabulary(d options.Descriptor) string {
	words := append([]string(nil), d.Vocabulary...)
	words = append(words, slices.Sorted(maps.Keys(d.Aliases))...)
	sep := "|"
	if d.Kind == options.FlagSet {
		sep = ","
	}
	return strings.Join(words, sep)
}
