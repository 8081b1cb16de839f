package rampage

import (
	"context"

	"github.com/lanrat/extsort"
)

// defaultExtSortConfig mirrors the teacher's extSortConfigDefault
// (cmd/treeball/main.go), tuned down for the bounded (<= MaxTarballSize)
// path counts this package ever deals with.
var defaultExtSortConfig = extsort.Config{
	ChunkSize:          100_000,
	NumWorkers:         2,
	ChanBuffSize:       1,
	SortedChanBuffSize: 1000,
	TempFilesDir:       "",
}

// extsortStrings wraps extsort.Strings for internal use, adapted verbatim
// from cmd/treeball/util.go's helper of the same name: it merges the
// sorter's own error channel with an optional upstream error channel, only
// ever forwarding the first error observed.
func extsortStrings(ctx context.Context, input <-chan string, upstreamErrs <-chan error, config *extsort.Config) (<-chan string, <-chan error) {
	sorter, sorterOut, sorterErrs := extsort.Strings(input, config)

	if sorter != nil {
		go sorter.Sort(ctx)
	}

	merged := make(chan error, 1)

	go func() {
		defer close(merged)

		for upstreamErrs != nil || sorterErrs != nil {
			select {
			case err, ok := <-upstreamErrs:
				if ok && err != nil {
					merged <- err

					return
				}

				upstreamErrs = nil

			case err, ok := <-sorterErrs:
				if ok && err != nil {
					merged <- err

					return
				}

				sorterErrs = nil
			}
		}
	}()

	return sorterOut, merged
}

// ComputeTreeDiff is STOMP: for each path in the union of both FileMaps,
// classify and compute a per-file change record, in strictly ascending
// lexicographic order over the union of keys (§4.5, I5).
//
// The union's keys are streamed through extsort.Strings exactly the way the
// teacher's `diff`/`list` commands sort path streams (cmd/treeball/util.go's
// extsortStrings) -- here sorting the deduplicated union of both sides'
// paths, rather than presence/absence across two independently-sorted
// streams, since content comparison at each matched path is STOMP's actual
// job.
func ComputeTreeDiff(ctx context.Context, left, right *FileMap, opts DiffOptions) ([]FileDiff, error) {
	seen := make(map[string]struct{}, left.Len()+right.Len())
	input := make(chan string, 1000)

	go func() {
		defer close(input)

		for _, k := range left.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				input <- k
			}
		}

		for _, k := range right.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				input <- k
			}
		}
	}()

	cfg := defaultExtSortConfig
	sorted, errs := extsortStrings(ctx, input, nil, &cfg)

	diffs := make([]FileDiff, 0, left.Len()+right.Len())

	for path := range sorted {
		leftData, leftOK := left.Get(path)
		rightData, rightOK := right.Get(path)

		diffs = append(diffs, computeFileDiff(path, leftData, leftOK, rightData, rightOK, opts))
	}

	if err := <-errs; err != nil {
		return nil, wrap(PhaseDiff, err, "failed to sort path union")
	}

	return diffs, nil
}
