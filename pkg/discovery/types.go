package discovery

import (
	"path/filepath"
	"time"
)

// Project is a known project as persisted in the project store.
type Project struct {
	Path         string `toml:"path" yaml:"path" json:"path"`
	Name         string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	LastAccessed int64  `toml:"last_accessed,omitempty" yaml:"last_accessed,omitempty" json:"last_accessed,omitempty"` // Unix seconds, zero until first access
}

// DisplayName returns the configured name, or the base name of the path.
func (p Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return filepath.Base(p.Path)
}

// LastAccessedTime returns LastAccessed as a time.Time, zero if never accessed.
func (p Project) LastAccessedTime() time.Time {
	if p.LastAccessed == 0 {
		return time.Time{}
	}
	return time.Unix(p.LastAccessed, 0)
}

// Result represents the result of a discovery scan
type Result struct {
	Root     string        // Canonical scan root
	Roots    []string      // Repository roots, canonical and sorted by path component
	Scanned  int           // Number of directories whose entries were read
	Denied   []string      // Directories skipped because listing them was not permitted
	Duration time.Duration // Time taken to scan
}
