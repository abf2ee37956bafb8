package discovery

import (
	"path/filepath"
	"sort"
	"strings"
)

// Canonical returns the absolute, symlink-resolved form of path, or path
// unchanged when it cannot be resolved. It never returns an error.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return path
	}
	return resolved
}

// ComparePaths orders paths component by component, so "/a/b" sorts before
// "/a-b" even though '-' sorts before '/' bytewise.
func ComparePaths(a, b string) int {
	ac := strings.Split(filepath.Clean(a), string(filepath.Separator))
	bc := strings.Split(filepath.Clean(b), string(filepath.Separator))

	for i := 0; i < len(ac) && i < len(bc); i++ {
		if c := strings.Compare(ac[i], bc[i]); c != 0 {
			return c
		}
	}
	return len(ac) - len(bc)
}

// SortPaths sorts paths in place using ComparePaths.
func SortPaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return ComparePaths(paths[i], paths[j]) < 0
	})
}

// pathSet is a set of canonical paths with an ancestor lookup.
type pathSet map[string]struct{}

func (s pathSet) add(path string) {
	s[path] = struct{}{}
}

// hasStrictAncestor reports whether any proper ancestor of path is a member.
func (s pathSet) hasStrictAncestor(path string) bool {
	dir := path
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		if _, ok := s[parent]; ok {
			return true
		}
		dir = parent
	}
}

// sorted returns the members that have no member ancestor, in path order.
func (s pathSet) sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		if s.hasStrictAncestor(p) {
			continue
		}
		paths = append(paths, p)
	}
	SortPaths(paths)
	return paths
}
