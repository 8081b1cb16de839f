package rampage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ExtensionOf_DotfileSemantics(t *testing.T) {
	require.Equal(t, "gitignore", extensionOf(".gitignore"))
	require.Equal(t, "", extensionOf("Makefile"))
	require.Equal(t, "png", extensionOf("a/b/image.png"))
	require.Equal(t, "json", extensionOf(".eslintrc.json"))
	require.Equal(t, "", extensionOf(""))
}

func Test_IsBinaryPath_EmptyAndNoExtension(t *testing.T) {
	require.False(t, IsBinaryPath(""))
	require.False(t, IsBinaryPath("README"))
	require.True(t, IsBinaryPath("image.png"))
}

// P7 (binary classification round-trip).
func Test_IsBinaryExtension_RoundTripAndDotPrefix(t *testing.T) {
	for _, ext := range append(append([]string{}, canonicalBinaryExtensions[:5]...), "wasm", "node") {
		require.True(t, IsBinaryExtension(ext), ext)
		require.True(t, IsBinaryExtension(strings.ToUpper(ext)), ext)
		require.False(t, IsBinaryExtension("."+ext), ext)
	}
}

// P8 (text override).
func Test_ShouldPrintPatch_TextOverride(t *testing.T) {
	require.True(t, ShouldPrintPatch("image.png", true))
	require.False(t, ShouldPrintPatch("image.png", false))
	require.True(t, ShouldPrintPatch("main.go", false))
}

func Test_GetBinaryExtensions_ReturnsIndependentCopy(t *testing.T) {
	copy1 := GetBinaryExtensions()
	copy1[0] = "not-a-real-extension"

	require.True(t, IsBinaryExtension("png"))
	require.NotContains(t, GetBinaryExtensions(), "not-a-real-extension")
}
