package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rampage-diff/rampage"
)

type diffFlags struct {
	auth              string
	credential        string
	s3AccessKeyID     string
	s3SecretAccessKey string
	s3Region          string
	s3Endpoint        string

	nameOnly          bool
	context           int
	ignoreAllSpace    bool
	ignoreSpaceChange bool
	noPrefix          bool
	text              bool
}

func newDiffCmd(ctx context.Context, fs afero.Fs, stdout io.Writer, stderr io.Writer) *cobra.Command {
	var flags diffFlags

	diffCmd := &cobra.Command{
		Use:     "diff <old> <new>",
		Short:   diffHelpShort,
		Long:    diffHelpLong,
		Example: diffExample,
		Args:    cobra.ExactArgs(2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			prog := NewProgram(fs, stdout, stderr)

			return prog.Diff(ctx, args[0], args[1], flags)
		},
	}

	diffCmd.Flags().StringVar(&flags.auth, "auth", "", "auth scheme for URL sources: none, basic, or bearer")
	diffCmd.Flags().StringVar(&flags.credential, "credential", "", "credential for --auth (bearer token or basic user:pass, base64)")
	diffCmd.Flags().StringVar(&flags.s3AccessKeyID, "s3-access-key-id", "", "S3 access key ID for s3:// sources")
	diffCmd.Flags().StringVar(&flags.s3SecretAccessKey, "s3-secret-access-key", "", "S3 secret access key for s3:// sources")
	diffCmd.Flags().StringVar(&flags.s3Region, "s3-region", "", "S3 region for s3:// sources (default us-east-1)")
	diffCmd.Flags().StringVar(&flags.s3Endpoint, "s3-endpoint", "", "S3-compatible endpoint for path-style addressing")

	diffCmd.Flags().BoolVar(&flags.nameOnly, "name-only", false, "print only the changed file paths")
	diffCmd.Flags().IntVar(&flags.context, "context", 3, "number of context lines around each hunk") //nolint:mnd
	diffCmd.Flags().BoolVar(&flags.ignoreAllSpace, "ignore-all-space", false, "collapse runs of spaces and tabs when comparing lines (same as --ignore-space-change)")
	diffCmd.Flags().BoolVar(&flags.ignoreSpaceChange, "ignore-space-change", false, "ignore changes in amount of whitespace")
	diffCmd.Flags().BoolVar(&flags.noPrefix, "no-prefix", false, "omit the a/ and b/ prefixes")
	diffCmd.Flags().BoolVar(&flags.text, "text", false, "treat all files as text, even ones classified as binary")

	return diffCmd
}

// Diff runs the full pipeline for two CLI-supplied source arguments and
// prints the resulting unified diff to stdout.
func (prog *Program) Diff(ctx context.Context, oldArg, newArg string, flags diffFlags) error {
	left := resolveSource(oldArg, rampage.AuthKind(flags.auth), flags.credential,
		flags.s3AccessKeyID, flags.s3SecretAccessKey, flags.s3Region, flags.s3Endpoint)
	right := resolveSource(newArg, rampage.AuthKind(flags.auth), flags.credential,
		flags.s3AccessKeyID, flags.s3SecretAccessKey, flags.s3Region, flags.s3Endpoint)

	opts := rampage.DiffOptions{
		NameOnly:          flags.nameOnly,
		Context:           flags.context,
		IgnoreAllSpace:    flags.ignoreAllSpace,
		IgnoreSpaceChange: flags.ignoreSpaceChange,
		NoPrefix:          flags.noPrefix,
		Text:              flags.text,
	}

	result, err := rampage.DiffWithStats(ctx, left, right, opts)
	if err != nil {
		return fmt.Errorf("failed to compute diff: %w", err)
	}

	if result.Output != "" {
		fmt.Fprint(prog.stdout, result.Output)
	}

	if result.FilesChanged > 0 {
		return ErrDiffsFound
	}

	return nil
}
