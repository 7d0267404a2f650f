package filesystem

import (
	"io/fs"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/arthur-debert/gim/pkg/types"
)

// memFS implements types.FS on top of an afero filesystem. Locks only
// serialize callers sharing the same memFS.
type memFS struct {
	fs    afero.Fs
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMemory creates an empty in-memory filesystem
func NewMemory() types.FS {
	return NewAfero(afero.NewMemMapFs())
}

// NewAfero adapts any afero filesystem to types.FS
func NewAfero(fs afero.Fs) types.FS {
	return &memFS{fs: fs, locks: make(map[string]*sync.Mutex)}
}

func (m *memFS) Stat(name string) (fs.FileInfo, error) {
	return m.fs.Stat(name)
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	info, err := m.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(m.fs, name)
}

func (m *memFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(m.fs, name, data, perm)
}

func (m *memFS) Chmod(name string, mode fs.FileMode) error {
	return m.fs.Chmod(name, mode)
}

func (m *memFS) MkdirAll(path string, perm fs.FileMode) error {
	return m.fs.MkdirAll(path, perm)
}

func (m *memFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(m.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

func (m *memFS) Remove(name string) error {
	return m.fs.Remove(name)
}

func (m *memFS) Lock(name string) (func() error, error) {
	f, err := m.fs.OpenFile(name, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	l, ok := m.locks[name]
	if !ok {
		l = &sync.Mutex{}
		m.locks[name] = l
	}
	m.mu.Unlock()

	l.Lock()
	return func() error {
		l.Unlock()
		return nil
	}, nil
}
