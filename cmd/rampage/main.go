/*
rampage computes git-compatible unified diffs between two gzip-compressed
tar package archives (e.g. npm-style *.tgz tarballs).

It runs the full CHOMP -> CRUNCH -> TEAR -> STOMP -> ROAR pipeline: acquiring
each archive from a URL, S3-compatible store, local file, or inline bytes;
decompressing and extracting it; diffing the two resulting file trees; and
rendering the result as a git-style unified diff. It supports these commands:

	diff - compute and print a unified diff between two package archives
	list - extract and list the paths contained in a package archive

All commands print their primary results to standard output (stdout). Any
encountered errors and operational messages are printed to standard error
(stderr).

Exit Codes:

	0 - Success (no differences, for 'diff')
	1 - Differences found (only for 'diff')
	2 - General failure (invalid input, fetch/decompress/tar errors, etc.)
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rampage-diff/rampage"
)

const (
	exitTimeout        = 10 * time.Second
	exitCodeSuccess    = 0
	exitCodeDiffsFound = 1
	exitCodeFailure    = 2
)

var (
	// Version is automatically populated by the build process.
	Version string

	// ErrDiffsFound is an exit-code relevant sentinel error.
	ErrDiffsFound = errors.New("differences were found")
)

// Program is the primary structure of the application.
type Program struct {
	fs afero.Fs

	stdout io.Writer
	stderr io.Writer
}

// NewProgram returns a pointer to a new [Program].
func NewProgram(fs afero.Fs, stdout io.Writer, stderr io.Writer) *Program {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	rampage.SetFileTransportFS(rampage.NewAferoFileFS(fs))

	return &Program{fs: fs, stdout: stdout, stderr: stderr}
}

func newRootCmd(ctx context.Context, fs afero.Fs, stdout io.Writer, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "rampage",
		Short:             rootHelpShort,
		Long:              rootHelpLong,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(newDiffCmd(ctx, fs, stdout, stderr))
	rootCmd.AddCommand(newListCmd(ctx, fs, stdout, stderr))

	return rootCmd
}

func main() {
	var exitCode int

	defer func() {
		os.Exit(exitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		rootCmd := newRootCmd(ctx, afero.NewOsFs(), os.Stdout, os.Stderr)
		errChan <- rootCmd.Execute()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			if errors.Is(err, ErrDiffsFound) {
				exitCode = exitCodeDiffsFound
			} else {
				exitCode = exitCodeFailure
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		} else {
			exitCode = exitCodeSuccess
		}

	case <-sigChan:
		fmt.Fprintln(os.Stderr, "interrupting...")
		cancel()

		select {
		case <-errChan:
			exitCode = exitCodeFailure
			fmt.Fprintln(os.Stderr, "interrupted (exited)")
		case <-time.After(exitTimeout):
			exitCode = exitCodeFailure
			fmt.Fprintln(os.Stderr, "interrupted (killed)")
		}
	}
}
