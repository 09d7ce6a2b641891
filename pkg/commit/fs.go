package commit

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/yaklabco/unfence/pkg/fsutil"
)

// FS is the filesystem surface the committer needs. The interface lives in
// the consumer package so the parse/commit pipeline can be tested without
// touching a real filesystem.
type FS interface {
	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// WriteFile writes content to path, overwriting any existing file. The
	// write must be all-or-nothing.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// OSFS is the production FS backed by the operating system. Writes are
// atomic via fsutil and optionally preceded by a sidecar backup.
type OSFS struct {
	// Backups controls sidecar backups before overwriting existing files.
	Backups fsutil.BackupConfig
}

// MkdirAll implements FS.
func (f *OSFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteFile implements FS.
func (f *OSFS) WriteFile(ctx context.Context, path string, content []byte) error {
	if _, err := fsutil.CreateBackup(ctx, path, f.Backups); err != nil {
		return err
	}
	return fsutil.WriteAtomic(ctx, path, content, 0)
}

// MemFS is an in-memory FS for tests. It records created directories and
// written files and can be told to fail specific paths.
type MemFS struct {
	mu sync.Mutex

	dirs  map[string]bool
	files map[string][]byte

	// FailDirs and FailPaths inject errors for the named targets.
	FailDirs  map[string]error
	FailPaths map[string]error
}

// NewMemFS creates an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{
		dirs:  make(map[string]bool),
		files: make(map[string][]byte),
	}
}

// MkdirAll implements FS.
func (m *MemFS) MkdirAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailDirs[path]; ok {
		return err
	}
	for p := path; p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		m.dirs[p] = true
		if filepath.Dir(p) == p {
			break
		}
	}
	return nil
}

// WriteFile implements FS.
func (m *MemFS) WriteFile(_ context.Context, path string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailPaths[path]; ok {
		return err
	}
	m.files[path] = append([]byte(nil), content...)
	return nil
}

// File returns the content written to path, if any.
func (m *MemFS) File(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.files[path]
	return content, ok
}

// HasDir reports whether the directory was created.
func (m *MemFS) HasDir(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.dirs[path]
}

// Paths returns the sorted paths of all written files.
func (m *MemFS) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
