package rampage

import "io"

// AuthKind selects how the URL transport authenticates its request.
type AuthKind string

const (
	AuthNone   AuthKind = "none"
	AuthBasic  AuthKind = "basic"
	AuthBearer AuthKind = "bearer"
)

// SourceConfig is a closed variant describing how to obtain one archive
// (§3). It is a sum type: exactly one of [URLSource], [S3Source],
// [InlineBytesSource], [InlineBase64Source], or [FileSource] implements it.
// Modeled as an interface with an unexported marker method rather than a
// tagged struct, per the Design Notes' "closed variant SourceConfig" guidance
// -- acquire() is a type switch over the concrete variants, not runtime class
// dispatch.
type SourceConfig interface {
	isSourceConfig()
}

// URLSource fetches the archive via plain HTTP(S) GET.
type URLSource struct {
	URL        string
	Auth       AuthKind
	Credential string
}

func (URLSource) isSourceConfig() {}

// S3Source fetches the archive from an S3-compatible object store using a
// SigV4-signed GET. Source may be an "s3://bucket/key" URI or an already
// fully-qualified https URL (used as-is in that case).
type S3Source struct {
	Source          string
	AccessKeyID     string
	SecretAccessKey string
	Region          string // default "us-east-1" when empty
	Endpoint        string // optional; enables path-style addressing
	SessionToken    string
}

func (S3Source) isSourceConfig() {}

// InlineBytesSource carries the archive as an already-decoded byte slice.
type InlineBytesSource struct {
	Data []byte
}

func (InlineBytesSource) isSourceConfig() {}

// InlineBase64Source carries the archive as a base64-encoded string. Kept as
// a distinct variant from [InlineBytesSource] so the "bytes or base64"
// ambiguity named in the Design Notes never surfaces as a runtime type check.
type InlineBase64Source struct {
	Base64 string
}

func (InlineBase64Source) isSourceConfig() {}

// FileSource reads the archive from a local filesystem path. Only available
// where filesystem I/O is supported; see [SetFileTransportFS].
type FileSource struct {
	Path string
}

func (FileSource) isSourceConfig() {}

// AcquiredStream is the result of CHOMP: a byte stream, consumed at most
// once, plus the source's optionally-declared size.
type AcquiredStream struct {
	Stream       io.ReadCloser
	DeclaredSize int64 // -1 means unknown
}

// FileMap is an insertion-ordered mapping from archive-relative path (with
// the "package/" prefix already stripped) to immutable byte content. Keys
// are unique; empty paths are never present (I1).
type FileMap struct {
	order []string
	data  map[string][]byte
}

// NewFileMap returns an empty, ready-to-use [FileMap].
func NewFileMap() *FileMap {
	return &FileMap{data: make(map[string][]byte)}
}

// Set inserts or overwrites path's content. Last-writer-wins on collision;
// the key's position in insertion order is preserved from its first
// occurrence (§4.3: "collisions are exotic in well-formed archives").
func (m *FileMap) Set(path string, content []byte) {
	if _, exists := m.data[path]; !exists {
		m.order = append(m.order, path)
	}

	m.data[path] = content
}

// Get returns path's content and whether it is present.
func (m *FileMap) Get(path string) ([]byte, bool) {
	b, ok := m.data[path]

	return b, ok
}

// Len returns the number of entries.
func (m *FileMap) Len() int {
	return len(m.order)
}

// Keys returns the paths in insertion (tar-entry) order.
func (m *FileMap) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)

	return out
}

// FileStatus classifies how a path changed between two [FileMap]s.
type FileStatus string

const (
	StatusModified  FileStatus = "modified"
	StatusAdded     FileStatus = "added"
	StatusDeleted   FileStatus = "deleted"
	StatusUnchanged FileStatus = "unchanged"
)

// DiffOptions controls diff computation and rendering (§3).
type DiffOptions struct {
	NameOnly          bool
	Context           int // default 3 when <= 0
	IgnoreAllSpace    bool
	IgnoreSpaceChange bool
	NoPrefix          bool
	SrcPrefix         string // default "a/"
	DstPrefix         string // default "b/"
	Text              bool
}

// normalized returns a copy of opts with defaults applied.
func (opts DiffOptions) normalized() DiffOptions {
	out := opts
	if out.Context <= 0 {
		out.Context = defaultContext
	}

	if out.NoPrefix {
		out.SrcPrefix = ""
		out.DstPrefix = ""

		return out
	}

	if out.SrcPrefix == "" {
		out.SrcPrefix = defaultSrcPrefix
	}

	if out.DstPrefix == "" {
		out.DstPrefix = defaultDstPrefix
	}

	return out
}

// FileDiff is the per-path result of STOMP (§3).
type FileDiff struct {
	Path     string
	Status   FileStatus
	IsBinary bool
	Patch    string // empty when Status == StatusUnchanged
}

// FormatResult is the output of ROAR (§3).
type FormatResult struct {
	Output       string
	FilesChanged int
	FilesAdded   int
	FilesDeleted int
}
