package main

const (
	rootHelpShort = "rampage computes git-compatible unified diffs between package archives."

	rootHelpLong = `rampage computes git-compatible unified diffs between two gzip-compressed tar
package archives (e.g. npm-style *.tgz tarballs).

It runs a five-stage pipeline: acquiring each archive from a URL, S3-compatible
store, local file, or inline bytes; decompressing and extracting it; diffing
the two resulting file trees; and rendering the result as a git-style unified
diff. It supports these commands:

  diff - compute and print a unified diff between two package archives
  list - extract and list the paths contained in a package archive

All commands print their primary results to standard output (stdout). Any
encountered errors and operational messages are printed to standard error
(stderr).

Exit Codes:
  0 - Success
  1 - Differences found (only for 'diff')
  2 - General failure (invalid input, fetch/decompress/tar errors, etc.)

For detailed help on a specific command, run:
  rampage help <command>`

	diffHelpShort = "Compute a unified diff between two package archives"

	diffHelpLong = `Compute a git-compatible unified diff between two package archives.

<old> and <new> may each be an http(s):// URL, an s3:// URI, or a local file
path; the scheme determines how the archive is acquired. Both archives are
acquired and extracted concurrently, then diffed path by path in strictly
ascending lexicographic order.

Binary files are reported as "Binary files ... differ" by default; pass
--text to force a textual diff even for files classified as binary.

The diff is written to standard output (stdout); any errors are written to
standard error (stderr). The command returns exit code 0 if no differences
were found, exit code 1 if differences were found, and exit code 2 on error.`

	diffExample = `
# Diff two local tarballs:
rampage diff old.tgz new.tgz

# Diff two remote tarballs, bearer-authenticated:
rampage diff https://example.com/old.tgz https://example.com/new.tgz \
  --auth=bearer --credential=$TOKEN

# Diff an S3-hosted tarball against a local one, listing only changed paths:
rampage diff s3://my-bucket/old.tgz new.tgz \
  --s3-access-key-id=$AWS_ACCESS_KEY_ID --s3-secret-access-key=$AWS_SECRET_ACCESS_KEY \
  --name-only`

	listHelpShort = "List the paths contained in a package archive"

	listHelpLong = `List all contained paths in a package archive, either sorted or in original
tar order. By default the paths are sorted alphabetically, which improves
readability and makes it easier to compare listings.

<archive> may be an http(s):// URL or a local file path. The list command
takes no credential flags: URLs are fetched without authentication, and an
s3:// URI fails with an authentication error because no S3 keys are passed.

All listed paths are printed to standard output (stdout), while any errors
are written to standard error (stderr). The command returns exit code 0 on
success, exit code 2 on error.`

	listExample = `
# List the sorted contents of a local tarball:
rampage list input.tgz

# Preserve original tar order:
rampage list input.tgz --sort=false

# Exclude a glob pattern from the listing:
rampage list input.tgz --exclude="node_modules/**"`
)
