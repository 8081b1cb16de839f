package rampage

import (
	"errors"
	"io"

	pgzip "github.com/klauspost/pgzip"
)

// NewDecompressor is CRUNCH: it wraps a gzip byte stream into an
// uncompressed byte stream. Construction-time misuse (nil input, or a
// stream whose gzip header is already malformed) fails DECOMPRESS
// immediately; a stream that turns out to carry invalid gzip data mid-read
// fails DECOMPRESS from the returned reader's Read call instead (§4.2).
//
// The teacher (util.go's tarPathStream) decompresses with the standard
// library's compress/gzip; here we use klauspost/pgzip's Reader instead, so
// the same dependency the teacher already carries for parallel gzip
// *writing* is also exercised on the read side.
func NewDecompressor(r io.Reader) (rc io.ReadCloser, err error) {
	defer recoverDiffError(&err)

	assertDiff(r != nil, PhaseDecompress, "decompress: nil input stream")

	gz, err := pgzip.NewReader(r)
	if err != nil {
		return nil, wrap(PhaseDecompress, err, "invalid gzip data")
	}

	return &decompressReader{gz: gz}, nil
}

type decompressReader struct {
	gz *pgzip.Reader
}

func (d *decompressReader) Read(p []byte) (int, error) {
	n, err := d.gz.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, wrap(PhaseDecompress, err, "invalid gzip data")
	}

	return n, err
}

func (d *decompressReader) Close() error {
	return d.gz.Close()
}
