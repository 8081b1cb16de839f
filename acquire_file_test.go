package rampage

import (
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func withMemFS(t *testing.T, files map[string]string) func() {
	t.Helper()

	mem := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(mem, name, []byte(content), 0o644))
	}

	prev := fileTransportFS
	SetFileTransportFS(NewAferoFileFS(mem))

	return func() { SetFileTransportFS(prev) }
}

func Test_AcquireFile_ReadsRegularFile(t *testing.T) {
	restore := withMemFS(t, map[string]string{"/pkg.tgz": "archive bytes"})
	defer restore()

	stream, err := acquireFile(FileSource{Path: "/pkg.tgz"})
	require.NoError(t, err)
	require.Equal(t, int64(len("archive bytes")), stream.DeclaredSize)

	content, err := io.ReadAll(stream.Stream)
	require.NoError(t, err)
	require.Equal(t, "archive bytes", string(content))
}

func Test_AcquireFile_MissingFile_FailsFetch(t *testing.T) {
	restore := withMemFS(t, map[string]string{})
	defer restore()

	_, err := acquireFile(FileSource{Path: "/missing.tgz"})
	require.Error(t, err)

	var de *DiffError
	require.ErrorAs(t, err, &de)
	require.Equal(t, PhaseFetch, de.Phase)
}

func Test_AcquireFile_Directory_FailsFetch(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/dir", 0o755))

	prev := fileTransportFS
	SetFileTransportFS(NewAferoFileFS(mem))
	defer SetFileTransportFS(prev)

	_, err := acquireFile(FileSource{Path: "/dir"})
	require.Error(t, err)

	var de *DiffError
	require.ErrorAs(t, err, &de)
	require.Equal(t, PhaseFetch, de.Phase)
}

func Test_AcquireFile_NilFS_FailsFetch(t *testing.T) {
	prev := fileTransportFS
	SetFileTransportFS(nil)
	defer SetFileTransportFS(prev)

	_, err := acquireFile(FileSource{Path: "/anything"})
	require.Error(t, err)

	var de *DiffError
	require.ErrorAs(t, err, &de)
	require.Equal(t, PhaseFetch, de.Phase)
}

func Test_ChunkedFileReader_CapsReadSize(t *testing.T) {
	restore := withMemFS(t, map[string]string{"/f.txt": "hello"})
	defer restore()

	stream, err := acquireFile(FileSource{Path: "/f.txt"})
	require.NoError(t, err)
	defer stream.Stream.Close()

	buf := make([]byte, fileChunkSize*2)
	n, err := stream.Stream.Read(buf)
	require.NoError(t, err)
	require.LessOrEqual(t, n, fileChunkSize)
}
