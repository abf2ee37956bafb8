package discovery

import (
	"context"
	"log/slog"
	"os"

	"thoreinstein.com/reposcan/pkg/config"
	rserrors "thoreinstein.com/reposcan/pkg/errors"
	"thoreinstein.com/reposcan/pkg/git"
)

// Engine orchestrates repository discovery and the project store
type Engine struct {
	Store   *Store
	Scanner *Scanner
	Logger  *slog.Logger
}

// NewEngine creates a new discovery engine
func NewEngine(cfg *config.ProjectsConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Store:   NewStore(cfg.File),
		Scanner: NewScanner(logger),
		Logger:  logger,
	}
}

// Projects returns the known projects, most recently accessed first.
func (e *Engine) Projects() ([]Project, error) {
	projects, err := e.Store.Load()
	if err != nil {
		return nil, err
	}
	SortByRecent(projects)
	return projects, nil
}

// Refresh scans root and records every repository found that is not yet
// known. It returns the scan result and the number of projects added.
func (e *Engine) Refresh(ctx context.Context, root string) (*Result, int, error) {
	result, err := e.Scanner.Scan(ctx, root)
	if err != nil {
		return nil, 0, err
	}

	var added int
	err = e.Store.Update(func(projects []Project) ([]Project, bool) {
		projects, added = MergeRoots(projects, result.Roots)
		return projects, added > 0
	})
	if err != nil {
		return nil, 0, err
	}

	e.Logger.Debug("projects refreshed", "root", result.Root, "found", len(result.Roots), "added", added)
	return result, added, nil
}

// Touch marks the project at path as accessed now. It reports whether a
// known project matched.
func (e *Engine) Touch(path string) (bool, error) {
	var touched bool
	err := e.Store.Update(func(projects []Project) ([]Project, bool) {
		touched = UpdateLastAccessed(projects, path)
		return projects, touched
	})
	if err != nil {
		return false, err
	}
	return touched, nil
}

// Add records path as a project, renaming it if it is already known.
func (e *Engine) Add(path, name string) (Project, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Project{}, rserrors.Wrapf(err, "invalid project path: %s", path)
	}
	if !info.IsDir() {
		return Project{}, rserrors.Newf("invalid project path: %s is not a directory", path)
	}
	if !git.IsGitRepo(path) {
		e.Logger.Warn("adding a directory that is not a git repository", "path", path)
	}

	var added Project
	err = e.Store.Update(func(projects []Project) ([]Project, bool) {
		projects, _ = AddProject(projects, path, name)
		added = projects[indexOf(projects, path)]
		return projects, true
	})
	if err != nil {
		return Project{}, err
	}
	return added, nil
}

// Remove forgets the project at path. It reports whether a project matched.
func (e *Engine) Remove(path string) (bool, error) {
	var removed bool
	err := e.Store.Update(func(projects []Project) ([]Project, bool) {
		projects, removed = RemoveProject(projects, path)
		return projects, removed
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
