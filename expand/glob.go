package expand

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globMeta is the set of bytes that make a field a glob pattern rather
// than a literal path, per spec.md §4.4's globbing step.
const globMeta = "*?["

// Glob expands pattern against the filesystem rooted at cwd (spec.md
// §4.4 step 10), using doublestar in place of the teacher's hand-rolled
// glob-to-regexp translator (mvdan.cc/sh/v3's expand/glob.go) since
// doublestar is already part of this module's stack via
// dannycoates-cc-allow's match.go. A pattern with no metacharacters, or
// one that matches nothing, is returned unchanged — globbing a
// non-existent pattern is not an error.
func Glob(pattern, cwd string) ([]string, error) {
	if !strings.ContainsAny(pattern, globMeta) {
		return []string{pattern}, nil
	}
	root := cwd
	rel := toSlash(pattern)
	if filepath.IsAbs(pattern) {
		root = "/"
		rel = strings.TrimPrefix(toSlash(pattern), "/")
	}
	matches, err := doublestar.Glob(os.DirFS(root), rel)
	if err != nil || len(matches) == 0 {
		return []string{pattern}, nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		if filepath.IsAbs(pattern) {
			out[i] = "/" + m
		} else {
			out[i] = m
		}
	}
	return out, nil
}

func toSlash(p string) string {
	return filepath.ToSlash(p)
}
