package rampage

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Decompress_EmptyGzipMember_YieldsZeroBytesNoError(t *testing.T) {
	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	require.NoError(t, gz.Close())

	r, err := NewDecompressor(&buf)
	require.NoError(t, err)

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Empty(t, content)
}

func Test_Decompress_RoundTrip(t *testing.T) {
	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("hello world"))
	require.NoError(t, gz.Close())

	r, err := NewDecompressor(&buf)
	require.NoError(t, err)

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "hello world", string(content))
}

func Test_Decompress_InvalidGzip_FailsDecompress(t *testing.T) {
	_, err := NewDecompressor(bytes.NewReader([]byte("not gzip data at all")))
	require.Error(t, err)

	var de *DiffError

	require.ErrorAs(t, err, &de)
	require.Equal(t, PhaseDecompress, de.Phase)
}

func Test_Decompress_NilStream_FailsDecompress(t *testing.T) {
	_, err := NewDecompressor(nil)
	require.Error(t, err)
}
