// mkpackage is a benchmark helper tool for synthetic old/new package archive
// pairs, for exercising the diff pipeline at scale.
//
//nolint:mnd
package main

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/afero"
)

const filesPerDir = 100

func buildPath(d int) string {
	level1 := fmt.Sprintf("dept_%02d", d/1000)
	level2 := fmt.Sprintf("proj_%03d", d/100)
	level3 := fmt.Sprintf("batch_%04d", d/10)
	level4 := fmt.Sprintf("group_%06d", d)

	return filepath.Join(level1, level2, level3, level4)
}

func entryPath(index int) string {
	subdir := buildPath(index / filesPerDir)
	name := fmt.Sprintf("data_%06d.txt", index%filesPerDir)

	return filepath.ToSlash(filepath.Join("package", subdir, name))
}

// writePair emits old.tgz and new.tgz such that roughly mutatePercent of
// totalFiles differ between them: a third of the mutated entries are
// dropped from new, a third are renamed in new (the old path is absent and
// a new ".added" path carries the content), and a third keep their path but
// change content -- covering StatusDeleted, StatusAdded, and StatusModified
// in one synthetic run.
func writePair(ctx context.Context, fs afero.Fs, oldPath, newPath string, totalFiles int, mutatePercent int) error {
	oldFile, err := fs.Create(oldPath)
	if err != nil {
		return fmt.Errorf("failed to create old archive: %w", err)
	}
	defer oldFile.Close()

	newFile, err := fs.Create(newPath)
	if err != nil {
		return fmt.Errorf("failed to create new archive: %w", err)
	}
	defer newFile.Close()

	oldGz := gzip.NewWriter(oldFile)
	defer oldGz.Close()

	newGz := gzip.NewWriter(newFile)
	defer newGz.Close()

	oldTw := tar.NewWriter(oldGz)
	defer oldTw.Close()

	newTw := tar.NewWriter(newGz)
	defer newTw.Close()

	rng := rand.New(rand.NewSource(1))

	for i := range totalFiles {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("error during creation: %w", err)
		}

		path := entryPath(i)
		content := []byte(fmt.Sprintf("synthetic content for entry %d\n", i))

		mutate := rng.Intn(100) < mutatePercent

		if err := writeEntry(oldTw, path, content); err != nil {
			return err
		}

		switch {
		case !mutate:
			if err := writeEntry(newTw, path, content); err != nil {
				return err
			}
		case rng.Intn(3) == 0:
			// dropped in new (StatusDeleted)
		case rng.Intn(2) == 0:
			// added-only path replaces this one in new (StatusAdded/StatusDeleted pair)
			addedPath := path + ".added"
			if err := writeEntry(newTw, addedPath, content); err != nil {
				return err
			}
		default:
			mutated := append([]byte(nil), content...)
			mutated = append(mutated, []byte("mutated\n")...)

			if err := writeEntry(newTw, path, mutated); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeEntry(tw *tar.Writer, path string, content []byte) error {
	hdr := &tar.Header{Name: path, Mode: 0o644, Size: int64(len(content))}

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write tar header: %w", err)
	}

	if _, err := tw.Write(content); err != nil {
		return fmt.Errorf("failed to write tar entry: %w", err)
	}

	return nil
}

func main() {
	if len(os.Args) != 5 {
		fmt.Fprintf(os.Stderr, "usage: mkpackage <old.tgz> <new.tgz> <file_count> <mutate_percent>\n")
		os.Exit(1)
	}

	oldPath, newPath := os.Args[1], os.Args[2]

	totalFiles, err := strconv.Atoi(os.Args[3])
	if err != nil || totalFiles <= 0 {
		fmt.Fprintf(os.Stderr, "error: invalid file count: %v\n", err)
		os.Exit(1)
	}

	mutatePercent, err := strconv.Atoi(os.Args[4])
	if err != nil || mutatePercent < 0 || mutatePercent > 100 {
		fmt.Fprintf(os.Stderr, "error: invalid mutate percent: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)

		if err := writePair(ctx, afero.NewOsFs(), oldPath, newPath, totalFiles, mutatePercent); err != nil {
			errChan <- fmt.Errorf("failed to create package pair: %w", err)
		}
	}()

	for {
		select {
		case <-sigChan:
			cancel()
		case err := <-errChan:
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			os.Exit(0)
		}
	}
}
