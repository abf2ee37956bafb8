package discovery

import (
	"sort"
	"time"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// indexOf returns the index of the project whose canonical path equals path's
// canonical form, or -1.
func indexOf(projects []Project, path string) int {
	target := Canonical(path)
	for i := range projects {
		if Canonical(projects[i].Path) == target {
			return i
		}
	}
	return -1
}

// UpdateLastAccessed sets the access time of the first project matching path
// to now. Both sides are compared in canonical form. It reports whether a
// project matched.
func UpdateLastAccessed(projects []Project, path string) bool {
	now := nowFunc().Unix()

	i := indexOf(projects, path)
	if i < 0 {
		return false
	}
	projects[i].LastAccessed = now
	return true
}

// MergeRoots appends a project for every root not already known and returns
// the new list with the number added.
func MergeRoots(projects []Project, roots []string) ([]Project, int) {
	known := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		known[Canonical(p.Path)] = struct{}{}
	}

	added := 0
	for _, root := range roots {
		c := Canonical(root)
		if _, ok := known[c]; ok {
			continue
		}
		known[c] = struct{}{}
		projects = append(projects, Project{Path: c})
		added++
	}

	return projects, added
}

// AddProject adds path to the list, or renames the existing entry when name is
// set. It reports whether a new entry was created.
func AddProject(projects []Project, path, name string) ([]Project, bool) {
	if i := indexOf(projects, path); i >= 0 {
		if name != "" {
			projects[i].Name = name
		}
		return projects, false
	}
	return append(projects, Project{Path: Canonical(path), Name: name}), true
}

// RemoveProject drops the first project matching path.
func RemoveProject(projects []Project, path string) ([]Project, bool) {
	i := indexOf(projects, path)
	if i < 0 {
		return projects, false
	}
	return append(projects[:i], projects[i+1:]...), true
}

// SortByRecent orders projects most recently accessed first. Projects never
// accessed come last; ties are ordered by path.
func SortByRecent(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.LastAccessed != b.LastAccessed {
			return a.LastAccessed > b.LastAccessed
		}
		return ComparePaths(a.Path, b.Path) < 0
	})
}
