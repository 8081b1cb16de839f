package rampage

import (
	"context"
	"fmt"
	"io"
)

// fileTransportFS optionally backs the file transport. It defaults to a real
// OS filesystem; runtimes without filesystem access (edge workers,
// sandboxed serverless) set it to nil via [SetFileTransportFS] so the file
// transport fails cleanly with a FETCH error instead of touching disk.
//
// This mirrors the teacher's afero.Fs field on Program: an injectable
// filesystem, defaulting to the real OS, swappable for tests or constrained
// runtimes.
var fileTransportFS fileFS = newOSFileFS()

// SetFileTransportFS overrides the filesystem backing the "file" transport.
// Passing nil disables the file transport entirely (for runtimes without
// filesystem access); passing an [afero.Fs]-backed implementation (see
// [NewAferoFileFS]) redirects it, e.g. to an in-memory filesystem in tests.
func SetFileTransportFS(fs fileFS) {
	fileTransportFS = fs
}

// Acquire is CHOMP: it resolves cfg to a byte stream plus optional declared
// size, dispatching on cfg's concrete type. It may fail with phases FETCH,
// AUTH, or SIZE.
func Acquire(ctx context.Context, cfg SourceConfig) (as *AcquiredStream, err error) {
	defer recoverDiffError(&err)

	assertDiff(cfg != nil, PhaseFetch, "acquire: nil source config")

	var stream *AcquiredStream

	switch c := cfg.(type) {
	case URLSource:
		stream, err = acquireURL(ctx, c)
	case S3Source:
		stream, err = acquireS3(ctx, c)
	case InlineBytesSource:
		stream, err = acquireInlineBytes(c)
	case InlineBase64Source:
		stream, err = acquireInlineBase64(c)
	case FileSource:
		stream, err = acquireFile(c)
	default:
		return nil, NewDiffError(PhaseFetch, fmt.Sprintf("unknown transport: %T", cfg))
	}

	if err != nil {
		return nil, err
	}

	if stream.DeclaredSize >= 0 && stream.DeclaredSize > MaxTarballSize {
		_ = stream.Stream.Close()

		return nil, NewDiffError(PhaseSize, fmt.Sprintf(
			"declared size %d exceeds limit %d", stream.DeclaredSize, MaxTarballSize))
	}

	// Hardened running-byte-counter enforcement (spec.md §9 open question,
	// resolved in SPEC_FULL.md §E.3): even if the declared size lies (or is
	// absent), consumption is cut off the instant it would exceed the bound.
	stream.Stream = newSizeGuardedReader(stream.Stream, MaxTarballSize)

	return stream, nil
}

// sizeGuardedReader wraps an io.ReadCloser and fails SIZE as soon as more
// than limit bytes have been read cumulatively, regardless of what the
// source declared up front.
type sizeGuardedReader struct {
	r     io.ReadCloser
	limit int64
	seen  int64
}

func newSizeGuardedReader(r io.ReadCloser, limit int64) io.ReadCloser {
	return &sizeGuardedReader{r: r, limit: limit}
}

func (g *sizeGuardedReader) Read(p []byte) (int, error) {
	n, err := g.r.Read(p)
	g.seen += int64(n)

	if g.seen > g.limit {
		return n, NewDiffError(PhaseSize, fmt.Sprintf(
			"acquired byte count exceeds limit %d", g.limit))
	}

	return n, err
}

func (g *sizeGuardedReader) Close() error {
	return g.r.Close()
}
