package rampage

import "strings"

// binaryExtensions is the process-global, read-only table of extensions
// considered binary. It is built once at package init from the canonical
// list below plus the two additions `wasm` and `node` (§4.4; Design note
// "Mutable global set").
var binaryExtensions = buildBinaryExtensionSet()

// canonicalBinaryExtensions is the curated list of binary file extensions:
// images, audio, video, archives/compression, executables/libraries, fonts,
// office/document formats, and assorted compiled/data formats.
var canonicalBinaryExtensions = []string{
	// images
	"png", "jpg", "jpeg", "jpe", "jfif", "gif", "bmp", "ico", "icns", "tif", "tiff",
	"webp", "heic", "heif", "avif", "psd", "psb", "ai", "eps", "raw", "cr2", "nef",
	"orf", "sr2", "dng", "xcf", "tga", "dds", "exr", "hdr", "pbm", "pgm", "ppm",
	"pnm", "svgz", "wbmp", "jp2", "j2k", "jpf", "jpx",

	// audio
	"mp3", "wav", "wave", "flac", "aac", "ogg", "oga", "opus", "m4a", "wma",
	"aiff", "aif", "au", "ra", "amr", "ape", "mid", "midi", "caf", "dsf", "dff",

	// video
	"mp4", "m4v", "mov", "avi", "mkv", "webm", "flv", "wmv", "mpg", "mpeg",
	"m2v", "3gp", "3g2", "ogv", "vob", "rm", "rmvb", "ts", "mts", "m2ts", "divx",
	"asf",

	// archives / compression
	"zip", "tar", "gz", "tgz", "bz2", "tbz2", "xz", "txz", "7z", "rar", "zst",
	"lz", "lz4", "lzma", "z", "cab", "arj", "ace", "zpaq", "sz", "br", "iso",
	"dmg", "vhd", "vhdx", "vmdk", "qcow2", "wim", "jar", "war", "ear", "apk",
	"xpi", "crx", "deb", "rpm", "pkg", "msi", "cpio", "a", "ar",

	// executables / libraries / object code
	"exe", "dll", "so", "dylib", "bin", "com", "out", "o", "obj", "lib",
	"class", "pyc", "pyo", "pyd", "elf", "sys", "ko", "bundle", "framework",
	"wasm32",

	// fonts
	"ttf", "otf", "woff", "woff2", "eot", "fon", "pfb", "pfm",

	// office / documents
	"doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods", "odp", "odg",
	"pdf", "rtf", "pages", "numbers", "key", "wps", "wpd", "one", "vsd", "vsdx",
	"pub",

	// databases / data formats
	"db", "sqlite", "sqlite3", "mdb", "accdb", "dbf", "frm", "myd", "myi",
	"ibd", "parquet", "orc", "avro", "feather", "arrow", "rdb", "aof",

	// disk / container images
	"img", "vdi", "ova", "ovf", "qed", "hdd",

	// compiled docs / ebooks
	"epub", "mobi", "azw", "azw3", "fb2", "djvu", "chm",

	// 3D / CAD / models
	"stl", "obj3d", "fbx", "blend", "3ds", "dwg", "dxf", "skp", "step", "stp",
	"iges", "igs", "gltf", "glb", "usd", "usdz",

	// misc binary data
	"bak", "dat", "bin2", "swf", "crx3", "ttc", "pak", "res", "resx", "nib",
	"keystore", "jks", "p12", "pfx", "der", "crt", "cer", "pem_bin", "gpg",
	"kdbx", "torrent", "xap", "ipa", "app", "dylib2", "prc", "mobileprovision",
	"dcm", "nii", "fits", "hdf5", "h5", "mat", "npy", "npz", "pkl", "pickle",
	"onnx", "pt", "pth", "caffemodel", "tflite", "safetensors", "gguf", "ggml",
	"model", "weights", "ckpt",

	// game assets
	"unity3d", "unitypackage", "pak2", "bsp", "vpk", "wad", "rom", "nes", "gba",
	"nds", "3ds_rom", "iso9660", "bin_cue", "cue",

	// misc legacy/compiled text formats treated as binary by convention
	"swp", "lock2", "idx", "pack", "pdb", "suo", "sdf", "ncb", "opendb",
}

func buildBinaryExtensionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(canonicalBinaryExtensions)+2)
	for _, ext := range canonicalBinaryExtensions {
		set[strings.ToLower(ext)] = struct{}{}
	}

	// The two additions named explicitly in §4.4.
	set["wasm"] = struct{}{}
	set["node"] = struct{}{}

	return set
}

// extensionOf extracts the last path component after the final '/', then
// lowercases the suffix after the final '.' within it. A leading-dot
// filename with no further dot (a dotfile, e.g. ".gitignore") yields the
// text after the dot ("gitignore") rather than an empty extension. A
// filename with no dot at all yields an empty extension.
func extensionOf(path string) string {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}

	if base == "" {
		return ""
	}

	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}

	if idx == 0 {
		return strings.ToLower(base[1:])
	}

	return strings.ToLower(base[idx+1:])
}

// IsBinaryPath reports whether path's extension is in the binary set.
// Returns false for empty strings and paths with no extension.
func IsBinaryPath(path string) bool {
	if path == "" {
		return false
	}

	ext := extensionOf(path)
	if ext == "" {
		return false
	}

	return IsBinaryExtension(ext)
}

// IsBinaryExtension reports whether ext (without a leading dot) is a member
// of the binary extension set, case-insensitively.
func IsBinaryExtension(ext string) bool {
	_, ok := binaryExtensions[strings.ToLower(ext)]

	return ok
}

// GetBinaryExtensions returns an independent copy of the binary extension
// list, so callers cannot mutate the process-global master set.
func GetBinaryExtensions() []string {
	out := make([]string, 0, len(binaryExtensions))
	for ext := range binaryExtensions {
		out = append(out, ext)
	}

	return out
}

// ShouldPrintPatch reports whether a textual patch should be emitted for
// path: true when text is forced, or when path is not classified as binary.
func ShouldPrintPatch(path string, text bool) bool {
	return text || !IsBinaryPath(path)
}
