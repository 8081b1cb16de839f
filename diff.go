package rampage

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ExtractPackage runs CHOMP -> CRUNCH -> TEAR for a single source,
// returning its extracted [FileMap]. This is the single-archive half of the
// pipeline, reused by [Diff]/[DiffWithStats] for each side. The CLI's `list`
// command runs the same three stages itself so that it can pass
// [ExtractOptions] to [Extract].
func ExtractPackage(ctx context.Context, cfg SourceConfig) (fm *FileMap, err error) {
	defer recoverDiffError(&err)

	stream, err := Acquire(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer stream.Stream.Close()

	decompressed, err := NewDecompressor(stream.Stream)
	if err != nil {
		return nil, err
	}
	defer decompressed.Close()

	return Extract(decompressed)
}

// pipeline runs CHOMP->CRUNCH->TEAR for one side under ctx, translating any
// panic from assertDiff back into a normal error so it composes cleanly
// inside an errgroup goroutine.
func pipeline(ctx context.Context, cfg SourceConfig) (fm *FileMap, err error) {
	defer recoverDiffError(&err)

	return ExtractPackage(ctx, cfg)
}

// acquireBothSides runs the two archives' pipelines concurrently and
// fail-fast: if either side errors, the other side's context is canceled
// and its resources released, without losing the original error (§5).
func acquireBothSides(ctx context.Context, left, right SourceConfig) (*FileMap, *FileMap, error) {
	g, gctx := errgroup.WithContext(ctx)

	var leftMap, rightMap *FileMap

	g.Go(func() error {
		fm, err := pipeline(gctx, left)
		if err != nil {
			return err
		}

		leftMap = fm

		return nil
	})

	g.Go(func() error {
		fm, err := pipeline(gctx, right)
		if err != nil {
			return err
		}

		rightMap = fm

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return leftMap, rightMap, nil
}

// Diff is the top-level entry point: acquire both archives concurrently,
// then format a git-style unified diff between them.
func Diff(ctx context.Context, left, right SourceConfig, opts DiffOptions) (out string, err error) {
	defer recoverDiffError(&err)

	leftMap, rightMap, err := acquireBothSides(ctx, left, right)
	if err != nil {
		return "", err
	}

	result, err := FormatDiff(ctx, leftMap, rightMap, opts)
	if err != nil {
		return "", err
	}

	return result.Output, nil
}

// DiffWithStats is [Diff], additionally returning aggregate statistics.
func DiffWithStats(ctx context.Context, left, right SourceConfig, opts DiffOptions) (result *FormatResult, err error) {
	defer recoverDiffError(&err)

	leftMap, rightMap, err := acquireBothSides(ctx, left, right)
	if err != nil {
		return nil, err
	}

	return FormatDiff(ctx, leftMap, rightMap, opts)
}
