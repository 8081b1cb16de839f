package rampage

// MaxTarballSize is the upper bound, in bytes, on both the declared and the
// actually-consumed size of a single archive (§3 invariant I2).
const MaxTarballSize = 20 * 1024 * 1024 // 20 MiB

const (
	// defaultRegion is used for the S3 transport when Region is unset.
	defaultRegion = "us-east-1"

	// defaultContext is the unified-diff context-line count when unset.
	defaultContext = 3

	// defaultSrcPrefix / defaultDstPrefix are the classic git a/ b/ prefixes.
	defaultSrcPrefix = "a/"
	defaultDstPrefix = "b/"

	// packagePrefix is the npm-style single leading directory stripped from
	// every extracted tar entry name, when present.
	packagePrefix = "package/"

	// fileChunkSize is the typical chunk size used by the file transport's
	// chunked reader.
	fileChunkSize = 64 * 1024 // 64 KiB
)
