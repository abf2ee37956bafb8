package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rserrors "thoreinstein.com/reposcan/pkg/errors"
)

func TestStore_LoadNonExistent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.toml"))

	projects, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestStore_RoundTrip(t *testing.T) {
	projects := []Project{
		{Path: "/home/me/src/alpha", Name: "Alpha", LastAccessed: 1700000000},
		{Path: "/home/me/src/beta"},
		{Path: "/home/me/src/gamma", LastAccessed: 1600000000},
	}

	for _, name := range []string{"projects.toml", "projects.yaml", "projects.yml", "projects.json"} {
		t.Run(name, func(t *testing.T) {
			store := NewStore(filepath.Join(t.TempDir(), "nested", "dir", name))

			require.NoError(t, store.Save(projects))

			loaded, err := NewStore(store.Path).Load()
			require.NoError(t, err)
			assert.ElementsMatch(t, projects, loaded)
		})
	}
}

func TestStore_OmitsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.toml")
	store := NewStore(path)

	require.NoError(t, store.Save([]Project{{Path: "/src/plain"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[projects]]")
	assert.Contains(t, string(data), "/src/plain")
	assert.NotContains(t, string(data), "last_accessed")
	assert.NotContains(t, string(data), "name")
}

func TestStore_LoadHandwrittenTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.toml")
	content := `[[projects]]
path = "/src/one"
name = "One"
last_accessed = 1712345678

[[projects]]
path = "/src/two"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	projects, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []Project{
		{Path: "/src/one", Name: "One", LastAccessed: 1712345678},
		{Path: "/src/two"},
	}, projects)
}

func TestStore_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[projects]\npath = "), 0644))

	_, err := NewStore(path).Load()
	require.Error(t, err)

	var storeErr *rserrors.StoreError
	require.True(t, rserrors.As(err, &storeErr))
	assert.Equal(t, "Load", storeErr.Operation)
	assert.Equal(t, path, storeErr.Path)
}

func TestStore_UnsupportedExtension(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "projects.ini"))

	_, err := store.Load()
	assert.True(t, rserrors.IsStoreError(err))

	err = store.Save(nil)
	assert.True(t, rserrors.IsStoreError(err))
}

func TestStore_SaveEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "projects.json"))

	require.NoError(t, store.Save(nil))

	projects, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestStore_SaveLeavesNoStrayFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "projects.toml"))

	require.NoError(t, store.Save([]Project{{Path: "/src/one"}}))
	require.NoError(t, store.Save([]Project{{Path: "/src/one"}, {Path: "/src/two"}}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1, "only the project file should remain")
	assert.Equal(t, "projects.toml", files[0].Name())

	info, err := os.Stat(store.Path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}
}

func makeProjects(n int) []Project {
	projects := make([]Project, n)
	for i := range projects {
		projects[i] = Project{Path: fmt.Sprintf("/home/me/src/project-%04d", i), LastAccessed: int64(i)}
	}
	return projects
}

func TestStore_LoadDuringSaveSeesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.toml")
	projects := makeProjects(2000)
	require.NoError(t, NewStore(path).Save(projects))

	done := make(chan error, 1)
	go func() {
		writer := NewStore(path)
		for range 50 {
			if err := writer.Save(projects); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	reader := NewStore(path)
	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			return
		default:
		}

		loaded, err := reader.Load()
		require.NoError(t, err)
		require.Len(t, loaded, len(projects), "Load returned a partial list")
	}
}

func TestStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.toml")

	// Separate instances contend on the file lock rather than on one mutex.
	stores := []*Store{NewStore(path), NewStore(path)}
	if runtime.GOOS == "windows" {
		stores[1] = stores[0]
	}

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- stores[i%2].Update(func(projects []Project) ([]Project, bool) {
				return append(projects, Project{Path: fmt.Sprintf("/src/worker-%02d", i)}), true
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	loaded, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Len(t, loaded, workers)
}

func TestStore_UpdateWithoutChange(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "state", "projects.toml"))

	called := false
	require.NoError(t, store.Update(func(projects []Project) ([]Project, bool) {
		called = true
		assert.Empty(t, projects)
		return projects, false
	}))
	assert.True(t, called)

	_, err := os.Stat(store.Path)
	assert.True(t, os.IsNotExist(err), "an unchanged update must not create the file")
}

func TestStore_UpdateReportsLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid"), 0644))

	err := NewStore(path).Update(func(projects []Project) ([]Project, bool) {
		t.Error("fn must not run when the file cannot be parsed")
		return projects, true
	})
	assert.True(t, rserrors.IsStoreError(err))
}
