package discovery

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rserrors "thoreinstein.com/reposcan/pkg/errors"
	"thoreinstein.com/reposcan/pkg/git"
)

// readDirBatch is the number of entries requested per ReadDir call.
const readDirBatch = 256

// Scanner finds git repository roots below a directory.
//
// A Scanner holds no per-scan state; every call to Scan owns its own
// accumulator, so one Scanner may be used from several goroutines.
type Scanner struct {
	Logger *slog.Logger
}

// NewScanner creates a new scanner. A nil logger uses slog.Default().
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{Logger: logger}
}

// walk is the state of a single scan.
type walk struct {
	logger *slog.Logger
	roots  pathSet
	result *Result
}

// ScanRepositories scans root and returns only the repository roots.
func ScanRepositories(ctx context.Context, root string) ([]string, error) {
	result, err := NewScanner(nil).Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	return result.Roots, nil
}

// Scan walks the tree below root depth-first and returns every repository
// root found. Symbolic links are never followed, directories that cannot be
// listed for lack of permission are treated as empty, and nothing inside a
// repository root that has already been found is read.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	start := time.Now()
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, rserrors.NewRootResolutionError(root, err)
	}
	realRoot, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, rserrors.NewRootResolutionError(root, err)
	}

	w := &walk{
		logger: logger,
		roots:  make(pathSet),
		result: &Result{Root: realRoot},
	}

	pending := []string{realRoot}
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, rserrors.Wrapf(err, "scan of %s cancelled", realRoot)
		}

		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		children, err := w.visit(dir)
		if err != nil {
			return nil, err
		}

		// Push in reverse so entries are visited in listing order.
		for i := len(children) - 1; i >= 0; i-- {
			pending = append(pending, children[i])
		}
	}

	w.result.Roots = w.roots.sorted()
	w.result.Duration = time.Since(start)

	logger.Debug("scan complete",
		"root", realRoot,
		"repositories", len(w.result.Roots),
		"scanned", w.result.Scanned,
		"denied", len(w.result.Denied),
		"duration", w.result.Duration,
	)

	return w.result, nil
}

// visit processes one directory and returns the subdirectories still to be
// scanned. A directory is claimed while its own listing is read, so no
// descendant of a repository root is ever returned and visit needs no
// containment check; pathSet.sorted drops nested roots as a final guard.
// Only a scan root named .git reaches the marker branch.
func (w *walk) visit(dir string) ([]string, error) {
	if git.IsMarker(dir) {
		w.claim(filepath.Dir(dir))
		return nil, nil
	}

	entries, err := readDir(dir)
	if err != nil {
		if rserrors.Is(err, fs.ErrPermission) {
			w.logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
			w.result.Denied = append(w.result.Denied, dir)
			return nil, nil
		}
		return nil, err
	}
	w.result.Scanned++

	var children []string
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if !entry.IsDir() {
			continue
		}

		// A marker claims dir before any sibling is scheduled, so
		// nothing inside a repository is ever read.
		if entry.Name() == git.MarkerDir {
			w.claim(dir)
			return nil, nil
		}

		children = append(children, filepath.Join(dir, entry.Name()))
	}

	return children, nil
}

func (w *walk) claim(dir string) {
	root := Canonical(dir)
	w.logger.Debug("found repository", "path", root)
	w.roots.add(root)
}

// dirFile is the part of *os.File the walk reads directories through.
type dirFile interface {
	ReadDir(n int) ([]fs.DirEntry, error)
	Close() error
}

// openDir is replaced in tests.
var openDir = func(name string) (dirFile, error) {
	return os.Open(name)
}

// readDir lists dir in listing order. Permission errors are returned
// unwrapped so the caller can absorb them; other failures are typed.
func readDir(dir string) ([]fs.DirEntry, error) {
	f, err := openDir(dir)
	if err != nil {
		if rserrors.Is(err, fs.ErrPermission) {
			return nil, err
		}
		return nil, rserrors.NewDirectoryReadError(dir, err)
	}
	defer f.Close()

	return readEntries(dir, f)
}

// readEntries drains r in batches. A failure before any entry arrives means
// the directory could not be listed at all; a later failure is an entry error.
func readEntries(dir string, r dirFile) ([]fs.DirEntry, error) {
	var entries []fs.DirEntry
	for {
		batch, err := r.ReadDir(readDirBatch)
		if err == io.EOF {
			return append(entries, batch...), nil
		}
		if err != nil {
			if len(entries) == 0 && len(batch) == 0 {
				if rserrors.Is(err, fs.ErrPermission) {
					return nil, err
				}
				return nil, rserrors.NewDirectoryReadError(dir, err)
			}
			return nil, rserrors.NewEntryReadError(dir, err)
		}
		entries = append(entries, batch...)
	}
}
