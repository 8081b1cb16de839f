package rampage

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExtractOptions configures the optional variant of TEAR named in §4.3:
// disabling prefix stripping and/or filtering entries by path. Neither
// affects the core contract of [Extract]; they exist for tooling (the
// `list` CLI command's exclude-pattern support).
type ExtractOptions struct {
	NoStripPrefix bool
	Filter        func(path string, hdr *tar.Header) bool
}

// GlobExcludeFilter builds an [ExtractOptions.Filter] that rejects any path
// matching one of the doublestar glob patterns, mirroring the teacher's
// --exclude flag (cmd/treeball/util.go's isExcluded), generalized from
// filesystem paths to tar entry paths.
func GlobExcludeFilter(patterns []string) func(path string, hdr *tar.Header) bool {
	return func(path string, _ *tar.Header) bool {
		for _, pattern := range patterns {
			if matched, _ := doublestar.Match(pattern, path); matched {
				return false
			}
		}

		return true
	}
}

// Extract is TEAR: it parses a tar byte stream into an ordered path->bytes
// mapping (§4.3). It fails TAR on malformed tar or on a symlink/hardlink
// entry.
func Extract(r io.Reader, opts ...ExtractOptions) (fm *FileMap, err error) {
	defer recoverDiffError(&err)

	assertDiff(r != nil, PhaseTar, "extract: nil input stream")

	var opt ExtractOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	tr := tar.NewReader(r)
	out := NewFileMap()

	for {
		hdr, err := tr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			if errors.Is(err, io.ErrUnexpectedEOF) {
				// Truncated/minimal input: the source tolerates this
				// silently (SPEC_FULL.md §E.2); stop with whatever was
				// parsed so far rather than erroring.
				break
			}

			return nil, wrap(PhaseTar, err, "malformed tar stream")
		}

		if hdr.Typeflag == tar.TypeSymlink || hdr.Typeflag == tar.TypeLink {
			target := hdr.Linkname
			if target == "" {
				target = "(unknown)"
			}

			return nil, NewDiffError(PhaseTar, fmt.Sprintf(
				"Symlinks are not supported: %s -> %s", hdr.Name, target))
		}

		if hdr.Typeflag != tar.TypeReg && hdr.Typeflag != tar.TypeRegA {
			// Directory or any other non-file kind: drain and discard.
			if _, err := io.Copy(io.Discard, tr); err != nil {
				return nil, wrap(PhaseTar, err, "failed to drain tar entry")
			}

			continue
		}

		path := transformPath(hdr.Name, opt.NoStripPrefix)
		if path == "" {
			if _, err := io.Copy(io.Discard, tr); err != nil {
				return nil, wrap(PhaseTar, err, "failed to drain tar entry")
			}

			continue
		}

		if opt.Filter != nil && !opt.Filter(path, hdr) {
			if _, err := io.Copy(io.Discard, tr); err != nil {
				return nil, wrap(PhaseTar, err, "failed to drain tar entry")
			}

			continue
		}

		content, err := readEntryBody(tr, hdr.Size)
		if err != nil {
			return nil, wrap(PhaseTar, err, fmt.Sprintf("failed to read entry %s", hdr.Name))
		}

		out.Set(path, content)
	}

	return out, nil
}

// transformPath strips a single leading "package/" prefix (exact,
// case-sensitive) unless noStrip is set.
func transformPath(name string, noStrip bool) string {
	if !noStrip {
		name = strings.TrimPrefix(name, packagePrefix)
	}

	return name
}

// readEntryBody reads a tar entry's full content into memory. For a positive
// declared size it fills one preallocated buffer of that size with
// io.ReadFull and returns it as is (the common case); if fewer bytes than
// declared arrive, whatever io.ReadAll still yields is appended to the bytes
// already read. A non-positive declared size is read with io.ReadAll alone.
func readEntryBody(tr *tar.Reader, size int64) ([]byte, error) {
	if size <= 0 {
		return io.ReadAll(tr)
	}

	buf := make([]byte, size)

	n, err := io.ReadFull(tr, buf)
	if err == nil && int64(n) == size {
		// Fast path: the whole declared size was read into buf.
		return buf, nil
	}

	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}

	rest, err := io.ReadAll(tr)
	if err != nil {
		return nil, err
	}

	return append(buf[:n], rest...), nil
}
