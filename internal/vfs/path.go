package vfs

import "strings"

// SplitPath splits a slash-separated path into its segments. Empty
// segments are discarded, so leading, trailing, and doubled slashes are
// all ignored: "/a//b/" and "a/b" resolve identically. An empty or
// all-slash path yields no segments and addresses the root itself.
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// JoinPath builds a root-relative path string from segments.
func JoinPath(segments ...string) string {
	return "/" + strings.Join(segments, "/")
}

// ChildPath appends a name to an existing path string.
func ChildPath(parent, name string) string {
	if parent == "" || parent == "/" {
		return "/" + name
	}
	return strings.TrimSuffix(parent, "/") + "/" + name
}
