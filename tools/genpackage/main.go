// genpackage is a benchmark helper tool for synthetic package archive creation.
//
//nolint:mnd
package main

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/spf13/afero"
)

const filesPerDir = 100

var workers = runtime.NumCPU() * 2

// buildPath shards synthetic files across a directory tree, the way the
// teacher's create_bench_tree.go shards a real filesystem tree, so the
// resulting archive's path distribution resembles a real package.
func buildPath(d int) string {
	level1 := fmt.Sprintf("dept_%02d", d/1000)
	level2 := fmt.Sprintf("proj_%03d", d/100)
	level3 := fmt.Sprintf("batch_%04d", d/10)
	level4 := fmt.Sprintf("group_%06d", d)

	return filepath.Join(level1, level2, level3, level4)
}

type entry struct {
	path    string
	content []byte
}

func synthesizeEntry(index int) entry {
	subdir := buildPath(index / filesPerDir)
	name := fmt.Sprintf("data_%06d.txt", index%filesPerDir)

	return entry{
		path:    filepath.ToSlash(filepath.Join("package", subdir, name)),
		content: []byte(fmt.Sprintf("synthetic content for entry %d\n", index)),
	}
}

// generatePackage synthesizes totalFiles entries across workers goroutines,
// merging their output into a single ordered channel for the tar writer,
// mirroring the producer/consumer split of the teacher's createDummyTree
// (there over real directories, here over in-memory tar entries).
func generatePackage(totalFiles int) <-chan entry {
	out := make(chan entry, workers)
	tasks := make(chan int, workers)

	var wg sync.WaitGroup

	results := make([]entry, totalFiles)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range tasks {
				results[i] = synthesizeEntry(i)
			}
		}()
	}

	go func() {
		defer close(tasks)

		for i := range totalFiles {
			tasks <- i
		}
	}()

	go func() {
		wg.Wait()
		defer close(out)

		for _, e := range results {
			out <- e
		}
	}()

	return out
}

func writeArchive(fs afero.Fs, path string, totalFiles int) error {
	out, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	defer gw.Close()

	tw := tar.NewWriter(gw)
	defer tw.Close()

	for e := range generatePackage(totalFiles) {
		hdr := &tar.Header{
			Name: e.path,
			Mode: 0o644,
			Size: int64(len(e.content)),
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write tar header: %w", err)
		}

		if _, err := tw.Write(e.content); err != nil {
			return fmt.Errorf("failed to write tar entry: %w", err)
		}
	}

	return nil
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: genpackage <output.tgz> <file_count>\n")
		os.Exit(1)
	}

	outputPath := os.Args[1]

	totalFiles, err := strconv.Atoi(os.Args[2])
	if err != nil || totalFiles <= 0 {
		fmt.Fprintf(os.Stderr, "error: invalid file count: %v\n", err)
		os.Exit(1)
	}

	if err := writeArchive(afero.NewOsFs(), outputPath, totalFiles); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
