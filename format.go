package rampage

import (
	"context"
	"fmt"
	"strings"
)

// FormatDiff is ROAR: it emits a git-style unified diff plus aggregate
// statistics over the union of leftMap and rightMap (§4.6).
func FormatDiff(ctx context.Context, left, right *FileMap, opts DiffOptions) (*FormatResult, error) {
	opts = opts.normalized()

	diffs, err := ComputeTreeDiff(ctx, left, right, opts)
	if err != nil {
		return nil, err
	}

	result := &FormatResult{}

	if opts.NameOnly {
		var names []string

		for _, fd := range diffs {
			if fd.Status == StatusUnchanged {
				continue
			}

			names = append(names, fd.Path)
			tallyStats(result, fd.Status)
		}

		if len(names) == 0 {
			result.Output = ""

			return result, nil
		}

		result.Output = strings.Join(names, "\n") + "\n"

		return result, nil
	}

	var blocks []string

	for _, fd := range diffs {
		if fd.Status == StatusUnchanged {
			continue
		}

		block := formatBlock(fd, opts)
		if block == "" {
			continue
		}

		blocks = append(blocks, block)
		tallyStats(result, fd.Status)
	}

	result.Output = strings.Join(blocks, "\n")

	return result, nil
}

func tallyStats(result *FormatResult, status FileStatus) {
	result.FilesChanged++

	switch status {
	case StatusAdded:
		result.FilesAdded++
	case StatusDeleted:
		result.FilesDeleted++
	}
}

// formatBlock renders a single file's diff --git block, choosing the binary
// or text envelope per §4.6.
func formatBlock(fd FileDiff, opts DiffOptions) string {
	srcPath := opts.SrcPrefix + fd.Path
	dstPath := opts.DstPrefix + fd.Path

	var b strings.Builder

	fmt.Fprintf(&b, "diff --git %s %s\n", srcPath, dstPath)

	if fd.IsBinary && !opts.Text {
		writeModeLines(&b, fd.Status)
		fmt.Fprintf(&b, "Binary files %s and %s differ\n", binaryHeaderSrc(fd, srcPath), binaryHeaderDst(fd, dstPath))

		return b.String()
	}

	if fd.Patch == "" {
		return ""
	}

	writeModeLines(&b, fd.Status)
	b.WriteString(trimOneTrailingNewline(fd.Patch))
	b.WriteString("\n")

	return b.String()
}

func writeModeLines(b *strings.Builder, status FileStatus) {
	switch status {
	case StatusAdded:
		b.WriteString("new file mode 100644\n")
		b.WriteString("index 0000000..0000000\n")
	case StatusDeleted:
		b.WriteString("deleted file mode 100644\n")
		b.WriteString("index 0000000..0000000\n")
	default:
		b.WriteString("index 0000000..0000000 100644\n")
	}
}

func binaryHeaderSrc(fd FileDiff, srcPath string) string {
	if fd.Status == StatusAdded {
		return "/dev/null"
	}

	return srcPath
}

func binaryHeaderDst(fd FileDiff, dstPath string) string {
	if fd.Status == StatusDeleted {
		return "/dev/null"
	}

	return dstPath
}

// trimOneTrailingNewline trims one trailing "\n" from the patch body when
// present (§4.5/§4.6); a patch whose last line has no newline is returned
// unchanged.
func trimOneTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1]
	}

	return s
}
