/*
Package rampage computes a git-compatible unified diff between two packaged
software archives (gzip-compressed tars following the npm convention of a
single top-level "package/" directory).

It is built for constrained, sandboxed runtimes (edge workers, serverless
functions) as well as general hosts: the whole pipeline operates on
in-memory byte buffers and streams, never requiring a writable filesystem
(the "file" source transport is the one opt-in exception, and itself runs
through an injectable [fileFS] rather than touching the OS directly).

The pipeline has five stages, run left to right, with the two archive sides
acquired and extracted concurrently before merging:

	CHOMP  - Acquirer:     resolve a SourceConfig to a byte stream (+ size)
	CRUNCH - Decompressor: gzip byte stream -> tar byte stream
	TEAR   - Extractor:    tar byte stream -> ordered path->bytes FileMap
	STOMP  - Differ:       classify + Myers-diff each path in the union
	ROAR   - Formatter:    emit a git-style unified diff + stats

[Diff] and [DiffWithStats] are the two public entry points; [ExtractPackage]
exposes a single side of the pipeline (CHOMP->CRUNCH->TEAR) on its own.
Every failure surfaced by this package is a [*DiffError] carrying one of the
phases above (or AUTH/SIZE, raised by CHOMP) and a fixed HTTP status; every
message and cause text passed through it is credential-sanitized first.
*/
package rampage
