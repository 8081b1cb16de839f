package rampage

import (
	"bytes"
	"regexp"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// decodeBytes lossily decodes b as UTF-8: malformed sequences become the
// Unicode replacement character, never an error. This is the same idiom
// edward-ap-class-collector/internal/textutil.NormalizeUTF8LF uses
// (bytes.ToValidUTF8) for the identical "never error" requirement (§4.5,
// SPEC_FULL.md §C).
func decodeBytes(b []byte) string {
	return string(bytes.ToValidUTF8(b, []byte("�")))
}

// normalizeLineEndings converts CRLF to LF, then any remaining lone CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	return s
}

// whitespaceRun matches a run of one or more spaces or tabs within a line, for
// the ignoreAllSpace/ignoreSpaceChange collapsing transform below.
var whitespaceRun = regexp.MustCompile(`[ \t]+`)

// collapseWhitespace reduces every run of spaces/tabs to a single space.
// ignoreAllSpace and ignoreSpaceChange are conflated deliberately: the
// source's underlying diff library exposes a single whitespace-insensitive
// mode, and spec.md §9 directs reimplementers to mirror that rather than
// invent a distinction the source never drew. Both option flags are still
// accepted and exposed independently for CLI/API parity.
func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// splitLinesKeepNL splits s into lines, keeping the trailing newline on each
// element so unified-diff hunks read naturally (mirrors
// edward-ap-class-collector/internal/diff.splitLinesKeepNL).
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}

	return strings.SplitAfter(s, "\n")
}

// computeDiff produces a unified-diff patch body (--- / +++ headers plus
// @@ hunks) for oldText -> newText, using oldPath/newPath verbatim as the
// header paths (callers are responsible for any a//b/ prefixing or
// /dev/null substitution). Returns "" if the underlying diff produces no
// hunks.
//
// The Myers-family hunk computation is delegated to
// github.com/pmezard/go-difflib, the same library
// edward-ap-class-collector/internal/diff wraps for identical output
// (--/++ headers, @@ hunks, ' '/'-'/'+' line prefixes).
func computeDiff(oldPath, newPath string, oldText, newText string, opts DiffOptions) string {
	if opts.IgnoreAllSpace || opts.IgnoreSpaceChange {
		oldText = collapseLines(oldText)
		newText = collapseLines(newText)
	}

	ctx := opts.Context
	if ctx <= 0 {
		ctx = defaultContext
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(oldText),
		B:        splitLinesKeepNL(newText),
		FromFile: oldPath,
		ToFile:   newPath,
		Context:  ctx,
	}

	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || !strings.Contains(s, "@@") {
		return ""
	}

	return s
}

func collapseLines(s string) string {
	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		lines[i] = collapseWhitespace(line)
	}

	return strings.Join(lines, "")
}

// computeFileDiff is STOMP's per-path decision (§4.5). leftOK/rightOK
// indicate presence in the respective FileMap; leftData/rightData are only
// meaningful when the corresponding *OK is true.
func computeFileDiff(path string, leftData []byte, leftOK bool, rightData []byte, rightOK bool, opts DiffOptions) FileDiff {
	opts = opts.normalized()

	srcHeader := opts.SrcPrefix + path
	dstHeader := opts.DstPrefix + path

	switch {
	case leftOK && rightOK:
		if bytes.Equal(leftData, rightData) {
			return FileDiff{Path: path, Status: StatusUnchanged}
		}

		oldText := decodeBytes(leftData)
		newText := decodeBytes(rightData)
		oldText = normalizeLineEndings(oldText)
		newText = normalizeLineEndings(newText)

		patch := computeDiff(srcHeader, dstHeader, oldText, newText, opts)
		if patch == "" {
			return FileDiff{Path: path, Status: StatusUnchanged}
		}

		return FileDiff{Path: path, Status: StatusModified, IsBinary: IsBinaryPath(path), Patch: patch}

	case rightOK:
		newText := normalizeLineEndings(decodeBytes(rightData))
		patch := computeDiff("/dev/null", dstHeader, "", newText, opts)

		return FileDiff{Path: path, Status: StatusAdded, IsBinary: IsBinaryPath(path), Patch: patch}

	case leftOK:
		oldText := normalizeLineEndings(decodeBytes(leftData))
		patch := computeDiff(srcHeader, "/dev/null", oldText, "", opts)

		return FileDiff{Path: path, Status: StatusDeleted, IsBinary: IsBinaryPath(path), Patch: patch}

	default:
		return FileDiff{Path: path, Status: StatusUnchanged}
	}
}
