package rampage

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Extract_StripsPackagePrefix(t *testing.T) {
	archive := buildArchive([]tarEntry{
		{name: "package/index.js", body: []byte("const x = 1;\n")},
		{name: "package/dir/", typ: tar.TypeDir},
		{name: "package/dir/a.txt", body: []byte("a")},
	})

	fm, err := Extract(bytes.NewReader(archive))
	require.NoError(t, err)

	content, ok := fm.Get("index.js")
	require.True(t, ok)
	require.Equal(t, "const x = 1;\n", string(content))

	_, ok = fm.Get("dir/a.txt")
	require.True(t, ok)

	// P6: no extracted path starts with "package/" or is empty.
	for _, k := range fm.Keys() {
		require.NotEqual(t, "", k)
		require.NotContains(t, k, "package/")
	}
}

func Test_Extract_NoPrefixPresent_KeepsPathsAsIs(t *testing.T) {
	archive := buildArchive([]tarEntry{{name: "a.txt", body: []byte("a")}})

	fm, err := Extract(bytes.NewReader(archive))
	require.NoError(t, err)

	_, ok := fm.Get("a.txt")
	require.True(t, ok)
}

// P9 (symlink rejection).
func Test_Extract_SymlinkRejected(t *testing.T) {
	archive := buildArchive([]tarEntry{
		{name: "package/link.js", typ: tar.TypeSymlink, link: "index.js"},
	})

	_, err := Extract(bytes.NewReader(archive))
	require.Error(t, err)

	var de *DiffError

	require.ErrorAs(t, err, &de)
	require.Equal(t, PhaseTar, de.Phase)
	require.Contains(t, de.Message, "Symlinks are not supported")
	require.Contains(t, de.Message, "link.js")
}

func Test_Extract_HardlinkRejected(t *testing.T) {
	archive := buildArchive([]tarEntry{
		{name: "package/hard.js", typ: tar.TypeLink, link: "index.js"},
	})

	_, err := Extract(bytes.NewReader(archive))
	require.Error(t, err)

	var de *DiffError

	require.ErrorAs(t, err, &de)
	require.Equal(t, PhaseTar, de.Phase)
}

func Test_Extract_LastWriterWinsOnCollision(t *testing.T) {
	archive := buildArchive([]tarEntry{
		{name: "package/a.txt", body: []byte("first")},
		{name: "package/a.txt", body: []byte("second")},
	})

	fm, err := Extract(bytes.NewReader(archive))
	require.NoError(t, err)
	require.Equal(t, 1, fm.Len())

	content, _ := fm.Get("a.txt")
	require.Equal(t, "second", string(content))
}

func Test_Extract_EmptyAfterStrip_DropsEntry(t *testing.T) {
	archive := buildArchive([]tarEntry{{name: "package/", typ: tar.TypeDir}})

	fm, err := Extract(bytes.NewReader(archive))
	require.NoError(t, err)
	require.Equal(t, 0, fm.Len())
}

func Test_Extract_TruncatedInput_LenientEmptyResult(t *testing.T) {
	// A few zero bytes is not a valid tar stream, but per SPEC_FULL.md's
	// leniency decision this yields an empty FileMap rather than erroring.
	fm, err := Extract(bytes.NewReader(make([]byte, 100)))
	require.NoError(t, err)
	require.Equal(t, 0, fm.Len())
}

func Test_Extract_GlobExcludeFilter(t *testing.T) {
	archive := buildArchive([]tarEntry{
		{name: "package/keep.txt", body: []byte("k")},
		{name: "package/node_modules/x.js", body: []byte("x")},
	})

	fm, err := Extract(bytes.NewReader(archive), ExtractOptions{
		Filter: GlobExcludeFilter([]string{"node_modules/**"}),
	})
	require.NoError(t, err)

	_, ok := fm.Get("keep.txt")
	require.True(t, ok)

	_, ok = fm.Get("node_modules/x.js")
	require.False(t, ok)
}

func Test_Extract_NoStripPrefix(t *testing.T) {
	archive := buildArchive([]tarEntry{{name: "package/a.txt", body: []byte("a")}})

	fm, err := Extract(bytes.NewReader(archive), ExtractOptions{NoStripPrefix: true})
	require.NoError(t, err)

	_, ok := fm.Get("package/a.txt")
	require.True(t, ok)
}
