package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem interface required for gim operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error

	// Lock takes an exclusive lock on name, creating the file when missing,
	// and returns the function that releases it
	Lock(name string) (unlock func() error, err error)
}

// GitClient is the subset of the version-control tool gim drives. Every
// method that takes dir operates on the working tree containing dir.
type GitClient interface {
	// IsInsideWorkTree reports whether dir belongs to a git working tree
	IsInsideWorkTree(ctx context.Context, dir string) (bool, error)

	// GetConfig returns the effective value of key, or "" when unset
	GetConfig(ctx context.Context, dir, key string) (string, error)

	// SetConfig writes key to the repository-local config
	SetConfig(ctx context.Context, dir, key, value string) error

	// Remotes lists configured remotes in config order
	Remotes(ctx context.Context, dir string) ([]Remote, error)

	// SetRemoteURL replaces the fetch URL of a remote
	SetRemoteURL(ctx context.Context, dir, name, url string) error

	// Clone clones url into dest (relative to dir), forwarding extraArgs
	// verbatim before the url
	Clone(ctx context.Context, dir, url, dest string, extraArgs []string) error
}
