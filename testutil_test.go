package rampage

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/base64"
)

// tarEntry is a minimal description of a synthetic tar entry for tests.
type tarEntry struct {
	name string
	body []byte
	typ  byte // defaults to tar.TypeReg when zero
	link string
}

// buildArchive gzip-tars entries in order, mirroring
// cmd/treeball/diff_test.go's createTar helper, generalized to carry real
// file content and non-regular entry types.
func buildArchive(entries []tarEntry) []byte {
	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		typ := e.typ
		if typ == 0 {
			typ = tar.TypeReg
		}

		hdr := &tar.Header{
			Name:     e.name,
			Typeflag: typ,
			Size:     int64(len(e.body)),
			Mode:     0o644,
			Linkname: e.link,
		}

		if typ == tar.TypeDir {
			hdr.Size = 0
		}

		_ = tw.WriteHeader(hdr)

		if typ == tar.TypeReg && len(e.body) > 0 {
			_, _ = tw.Write(e.body)
		}
	}

	_ = tw.Close()
	_ = gz.Close()

	return buf.Bytes()
}

// buildPackageArchive is buildArchive with every name prefixed "package/",
// the npm-style convention §4.3 strips.
func buildPackageArchive(files map[string]string) []byte {
	entries := make([]tarEntry, 0, len(files))
	for name, body := range files {
		entries = append(entries, tarEntry{name: "package/" + name, body: []byte(body)})
	}

	return buildArchive(entries)
}

// toBase64 is a thin test helper for constructing InlineBase64Source fixtures.
func toBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
