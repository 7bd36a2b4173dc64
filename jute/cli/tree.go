package cli

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/options"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/paths"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type treeFlags struct {
	recursive    bool
	fragments    []string
	filenames    []string
	globs        []string
	ignoreFile   string
	showExcluded bool
}

func newTreeCommand(a *app) *cobra.Command {
	f := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "tree <root>...",
		Short: "List the regular files below one or more directories",
		Long: `List every regular file below each root, one path per line in sorted order.

Exclusions:
  --exclude       path fragment; a file is dropped when the fragment's segments
                  appear in its path in order ("foo/bar" drops /foo/x/bar/a.txt)
  --exclude-name  exact file name, wherever it lives
  --glob          glob on the path relative to the root ("**.tmp")
  --ignore-file   gitignore style file looked up in each root`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.treeOptions(cmd, f)
			return runTree(cmd, a, args, opts, f.showExcluded)
		},
	}

	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", true, "descend into subdirectories")
	cmd.Flags().StringSliceVarP(&f.fragments, "exclude", "e", nil, "path fragment to exclude (repeatable)")
	cmd.Flags().StringSliceVarP(&f.filenames, "exclude-name", "n", nil, "file name to exclude (repeatable)")
	cmd.Flags().StringSliceVarP(&f.globs, "glob", "g", nil, "glob to exclude (repeatable)")
	cmd.Flags().StringVar(&f.ignoreFile, "ignore-file", "", "ignore file name inside each root")
	cmd.Flags().BoolVar(&f.showExcluded, "show-excluded", false, "also print excluded files, marked")

	return cmd
}

// treeOptions layers explicitly set flags over the configured defaults.
func (a *app) treeOptions(cmd *cobra.Command, f *treeFlags) options.TraversalOptions {
	opts := options.FromConfig(a.cfg.Walker)
	flags := cmd.Flags()

	if flags.Changed("recursive") {
		opts.Recursive = f.recursive
	}
	opts.ExcludeFragments = append(opts.ExcludeFragments, f.fragments...)
	opts.ExcludeFilenames = append(opts.ExcludeFilenames, f.filenames...)
	opts.ExcludeGlobs = append(opts.ExcludeGlobs, f.globs...)
	if flags.Changed("ignore-file") {
		opts.IgnoreFile = f.ignoreFile
	}
	return opts
}

func runTree(cmd *cobra.Command, a *app, roots []string, opts options.TraversalOptions, showExcluded bool) error {
	var mu sync.Mutex
	excluded := paths.NewPathSet()

	walkerOpts := []filesystem.WalkerOption{filesystem.WithLogger(a.logger)}
	if showExcluded {
		walkerOpts = append(walkerOpts, filesystem.WithExcludedHook(func(p paths.Path) {
			mu.Lock()
			excluded.Add(p)
			mu.Unlock()
		}))
	}
	walker := filesystem.NewWalker(walkerOpts...)

	results, err := walker.EnumerateRoots(cmd.Context(), roots, opts)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(results))
	for root := range results {
		keys = append(keys, root)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	for _, root := range keys {
		merged := results[root]
		if showExcluded {
			for _, p := range excluded.WithPrefix(paths.Parse(root)) {
				merged.Add(p)
			}
		}
		if err := printTree(out, merged, excluded); err != nil {
			return err
		}
	}
	return nil
}

func printTree(out io.Writer, set *paths.PathSet, excluded *paths.PathSet) error {
	marker := color.New(color.FgRed).Sprint(" -- EXCLUDED")

	var err error
	set.Walk(func(p paths.Path) bool {
		suffix := ""
		if excluded.Has(p) {
			suffix = marker
		}
		_, err = fmt.Fprintf(out, "%s%s\n", p, suffix)
		return err != nil
	})
	return err
}
