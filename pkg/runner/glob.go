package runner

import (
	"path"
	"path/filepath"
	"strings"
)

// globSet matches slash-separated relative paths against glob patterns.
//
// A "**" segment matches any number of path segments. A pattern without a
// slash also matches the base name. A pattern that matches a directory
// matches everything beneath it.
type globSet [][]string

func newGlobSet(patterns []string) globSet {
	set := make(globSet, 0, len(patterns))
	for _, p := range patterns {
		p = strings.Trim(filepath.ToSlash(p), "/")
		if p == "" {
			continue
		}
		set = append(set, strings.Split(p, "/"))
	}
	return set
}

// match reports whether rel, or one of its parent directories, matches any
// pattern in the set.
func (g globSet) match(rel string) bool {
	if len(g) == 0 {
		return false
	}

	segments := strings.Split(filepath.ToSlash(filepath.Clean(rel)), "/")
	for _, pattern := range g {
		if len(pattern) == 1 && pattern[0] != "**" {
			// Bare name patterns apply to any single segment.
			for _, seg := range segments {
				if ok, _ := path.Match(pattern[0], seg); ok {
					return true
				}
			}
			continue
		}
		for n := len(segments); n > 0; n-- {
			if matchSegments(pattern, segments[:n]) {
				return true
			}
		}
	}
	return false
}

// matchSegments matches path segments against pattern segments.
func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(segments); i++ {
				if matchSegments(rest, segments[i:]) {
					return true
				}
			}
			return false
		}
		if len(segments) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], segments[0]); err != nil || !ok {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}
	return len(segments) == 0
}
