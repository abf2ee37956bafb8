package discovery

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	rserrors "thoreinstein.com/reposcan/pkg/errors"
)

// Store handles persistence of the known project list
type Store struct {
	Path string

	mu sync.Mutex
}

// projectsFile is the on-disk layout shared by every format.
type projectsFile struct {
	Projects []Project `toml:"projects" yaml:"projects" json:"projects"`
}

type codec struct {
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

// NewStore creates a new store instance
func NewStore(path string) *Store {
	return &Store{
		Path: path,
	}
}

// codecFor picks the encoding from the file extension.
func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return codec{marshal: toml.Marshal, unmarshal: toml.Unmarshal}, nil
	case ".yaml", ".yml":
		return codec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}, nil
	case ".json":
		return codec{
			marshal: func(v any) ([]byte, error) {
				return json.MarshalIndent(v, "", "  ")
			},
			unmarshal: json.Unmarshal,
		}, nil
	default:
		return codec{}, rserrors.Newf("unsupported project file extension %q", filepath.Ext(path))
	}
}

// Load reads the project list from disk. A missing file is an empty list.
// Writes replace the file atomically, so Load needs no lock.
func (s *Store) Load() ([]Project, error) {
	c, err := codecFor(s.Path)
	if err != nil {
		return nil, rserrors.NewStoreErrorWithCause("Load", s.Path, "unsupported format", err)
	}

	data, err := os.ReadFile(s.Path)
	if rserrors.Is(err, fs.ErrNotExist) {
		return []Project{}, nil // Not an error, just empty
	}
	if err != nil {
		return nil, rserrors.NewStoreErrorWithCause("Load", s.Path, "failed to read file", err)
	}

	var file projectsFile
	if err := c.unmarshal(data, &file); err != nil {
		return nil, rserrors.NewStoreErrorWithCause("Load", s.Path, "failed to parse file", err)
	}
	if file.Projects == nil {
		file.Projects = []Project{}
	}

	return file.Projects, nil
}

// Save replaces the project list on disk, creating parent directories as
// needed.
func (s *Store) Save(projects []Project) error {
	unlock, err := s.lock("Save")
	if err != nil {
		return err
	}
	defer unlock()

	return s.write(projects)
}

// Update loads the project list, applies fn and saves the result if fn
// reports a change. The whole sequence holds the store lock, so concurrent
// updates from other goroutines or processes are not lost.
func (s *Store) Update(fn func(projects []Project) ([]Project, bool)) error {
	unlock, err := s.lock("Update")
	if err != nil {
		return err
	}
	defer unlock()

	projects, err := s.Load()
	if err != nil {
		return err
	}

	projects, changed := fn(projects)
	if !changed {
		return nil
	}
	return s.write(projects)
}

// lock serializes writers. The advisory lock is taken on the directory
// holding Path, which leaves no lock file behind.
func (s *Store) lock(op string) (func(), error) {
	if _, err := codecFor(s.Path); err != nil {
		return nil, rserrors.NewStoreErrorWithCause(op, s.Path, "unsupported format", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, rserrors.NewStoreErrorWithCause(op, s.Path, "failed to create directory", err)
	}

	s.mu.Lock()
	unlock, err := lockFile(dir)
	if err != nil {
		s.mu.Unlock()
		return nil, rserrors.NewStoreErrorWithCause("Lock", s.Path, "failed to acquire lock", err)
	}

	return func() {
		unlock()
		s.mu.Unlock()
	}, nil
}

// write encodes projects into a temporary file next to Path and renames it
// into place, so Load never observes a partial file. The caller holds the lock.
func (s *Store) write(projects []Project) error {
	c, err := codecFor(s.Path)
	if err != nil {
		return rserrors.NewStoreErrorWithCause("Save", s.Path, "unsupported format", err)
	}

	if projects == nil {
		projects = []Project{}
	}
	data, err := c.marshal(projectsFile{Projects: projects})
	if err != nil {
		return rserrors.NewStoreErrorWithCause("Save", s.Path, "failed to encode projects", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), "."+filepath.Base(s.Path)+".tmp.*")
	if err != nil {
		return rserrors.NewStoreErrorWithCause("Save", s.Path, "failed to create temporary file", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return rserrors.NewStoreErrorWithCause("Save", s.Path, "failed to write file", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return rserrors.NewStoreErrorWithCause("Save", s.Path, "failed to set file mode", err)
	}
	if err := tmp.Close(); err != nil {
		return rserrors.NewStoreErrorWithCause("Save", s.Path, "failed to write file", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return rserrors.NewStoreErrorWithCause("Save", s.Path, "failed to replace file", err)
	}

	return nil
}
