package rampage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_FormatDiff_IdenticalTrees_EmptyOutputZeroStats(t *testing.T) {
	left := NewFileMap()
	left.Set("a.txt", []byte("same"))

	right := NewFileMap()
	right.Set("a.txt", []byte("same"))

	result, err := FormatDiff(context.Background(), left, right, DiffOptions{})
	require.NoError(t, err)
	require.Empty(t, result.Output)
	require.Equal(t, 0, result.FilesChanged)
}

func Test_FormatDiff_ModifiedFile_EmitsGitStyleBlock(t *testing.T) {
	left := NewFileMap()
	left.Set("a.txt", []byte("old\n"))

	right := NewFileMap()
	right.Set("a.txt", []byte("new\n"))

	result, err := FormatDiff(context.Background(), left, right, DiffOptions{})
	require.NoError(t, err)
	require.Contains(t, result.Output, "diff --git a/a.txt b/a.txt")
	require.Contains(t, result.Output, "-old")
	require.Contains(t, result.Output, "+new")
	require.Equal(t, 1, result.FilesChanged)
}

func Test_FormatDiff_AddedAndDeleted_TalliesCorrectly(t *testing.T) {
	left := NewFileMap()
	left.Set("gone.txt", []byte("bye"))

	right := NewFileMap()
	right.Set("new.txt", []byte("hi"))

	result, err := FormatDiff(context.Background(), left, right, DiffOptions{})
	require.NoError(t, err)
	require.Equal(t, 2, result.FilesChanged)
	require.Equal(t, 1, result.FilesAdded)
	require.Equal(t, 1, result.FilesDeleted)
	require.Contains(t, result.Output, "new file mode")
	require.Contains(t, result.Output, "deleted file mode")
}

func Test_FormatDiff_BinaryFileDefault_PrintsBinaryNotice(t *testing.T) {
	left := NewFileMap()
	left.Set("img.png", []byte{0x01, 0x02})

	right := NewFileMap()
	right.Set("img.png", []byte{0x03, 0x04})

	result, err := FormatDiff(context.Background(), left, right, DiffOptions{})
	require.NoError(t, err)
	require.Contains(t, result.Output, "Binary files")
	require.NotContains(t, result.Output, "@@")
}

func Test_FormatDiff_BinaryFileTextOverride_PrintsPatch(t *testing.T) {
	left := NewFileMap()
	left.Set("img.png", []byte("old\n"))

	right := NewFileMap()
	right.Set("img.png", []byte("new\n"))

	result, err := FormatDiff(context.Background(), left, right, DiffOptions{Text: true})
	require.NoError(t, err)
	require.Contains(t, result.Output, "@@")
}

func Test_FormatDiff_NameOnly_ListsChangedPathsOnly(t *testing.T) {
	left := NewFileMap()
	left.Set("same.txt", []byte("x"))
	left.Set("changed.txt", []byte("old"))

	right := NewFileMap()
	right.Set("same.txt", []byte("x"))
	right.Set("changed.txt", []byte("new"))

	result, err := FormatDiff(context.Background(), left, right, DiffOptions{NameOnly: true})
	require.NoError(t, err)
	require.Equal(t, "changed.txt\n", result.Output)
}

func Test_FormatDiff_NoPrefix_OmitsABPrefixes(t *testing.T) {
	left := NewFileMap()
	left.Set("a.txt", []byte("old\n"))

	right := NewFileMap()
	right.Set("a.txt", []byte("new\n"))

	result, err := FormatDiff(context.Background(), left, right, DiffOptions{NoPrefix: true})
	require.NoError(t, err)
	require.Contains(t, result.Output, "diff --git a.txt a.txt")
}
