package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rampage-diff/rampage"
)

func newListCmd(ctx context.Context, fs afero.Fs, stdout io.Writer, stderr io.Writer) *cobra.Command {
	var (
		sortOutput bool
		excludes   []string
	)

	listCmd := &cobra.Command{
		Use:     "list <archive>",
		Short:   listHelpShort,
		Long:    listHelpLong,
		Example: listExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			prog := NewProgram(fs, stdout, stderr)

			return prog.List(ctx, args[0], sortOutput, excludes)
		},
	}
	listCmd.Flags().BoolVar(&sortOutput, "sort", true, "sort the output list; for better comparability")
	listCmd.Flags().StringArrayVar(&excludes, "exclude", nil, "glob pattern to exclude; can be repeated")

	return listCmd
}

// List runs CHOMP->CRUNCH->TEAR for a single source and prints its contained
// paths, mirroring the teacher's `list` command but sourced from the
// five-stage pipeline instead of a direct tar walk.
func (prog *Program) List(ctx context.Context, arg string, sortOutput bool, excludes []string) error {
	cfg := resolveSource(arg, rampage.AuthNone, "", "", "", "", "")

	stream, err := rampage.Acquire(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to acquire archive: %w", err)
	}
	defer stream.Stream.Close()

	decompressed, err := rampage.NewDecompressor(stream.Stream)
	if err != nil {
		return fmt.Errorf("failed to decompress archive: %w", err)
	}
	defer decompressed.Close()

	var extractOpts rampage.ExtractOptions
	if len(excludes) > 0 {
		extractOpts.Filter = rampage.GlobExcludeFilter(excludes)
	}

	fm, err := rampage.Extract(decompressed, extractOpts)
	if err != nil {
		return fmt.Errorf("failed to extract archive: %w", err)
	}

	paths := fm.Keys()
	if sortOutput {
		sort.Strings(paths)
	}

	for _, p := range paths {
		fmt.Fprintln(prog.stdout, p)
	}

	return nil
}
