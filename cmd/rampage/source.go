package main

import (
	"strings"

	"github.com/rampage-diff/rampage"
)

// resolveSource maps a CLI positional argument into a [rampage.SourceConfig],
// dispatching on its scheme the same way the teacher's multiPathStream
// dispatches on stat(path).IsDir() -- here the "directory vs tarball"
// decision becomes "URL vs s3:// URI vs local path".
func resolveSource(arg string, auth rampage.AuthKind, credential string, s3AccessKeyID, s3SecretAccessKey, s3Region, s3Endpoint string) rampage.SourceConfig {
	switch {
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return rampage.URLSource{URL: arg, Auth: auth, Credential: credential}
	case strings.HasPrefix(arg, "s3://"):
		return rampage.S3Source{
			Source:          arg,
			AccessKeyID:     s3AccessKeyID,
			SecretAccessKey: s3SecretAccessKey,
			Region:          s3Region,
			Endpoint:        s3Endpoint,
		}
	default:
		return rampage.FileSource{Path: arg}
	}
}
