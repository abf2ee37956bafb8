package git

import (
	"os"
	"path/filepath"
)

// MarkerDir is the directory git keeps its metadata in. Its presence as an
// immediate child marks the parent as a repository root.
const MarkerDir = ".git"

// IsMarker reports whether path names a git marker directory.
func IsMarker(path string) bool {
	if filepath.Base(path) != MarkerDir {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsGitRepo checks if a path is a git repository
func IsGitRepo(path string) bool {
	// Check for .git directory or file (for worktrees)
	gitPath := filepath.Join(path, MarkerDir)
	if info, err := os.Stat(gitPath); err == nil {
		return info.IsDir() || info.Mode().IsRegular()
	}

	// Also check if it's a bare repo (contains HEAD, config, objects)
	headPath := filepath.Join(path, "HEAD")
	configPath := filepath.Join(path, "config")
	objectsPath := filepath.Join(path, "objects")
	if _, err := os.Stat(headPath); err == nil {
		if _, err := os.Stat(configPath); err == nil {
			if info, err := os.Stat(objectsPath); err == nil && info.IsDir() {
				return true
			}
		}
	}

	return false
}

// FindRoot walks upward from start and returns the first directory that
// contains a .git entry. It returns "" when start is not inside a repository.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		gitPath := filepath.Join(dir, MarkerDir)
		if info, err := os.Stat(gitPath); err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
