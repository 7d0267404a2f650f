package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/gim/pkg/filesystem"
	"github.com/arthur-debert/gim/pkg/paths"
	"github.com/arthur-debert/gim/pkg/types"
	"github.com/stretchr/testify/require"
)

// TestEnvironment is an isolated config + ssh directory pair under a temp root
type TestEnvironment struct {
	Root      string
	ConfigDir string
	SSHDir    string
	StateDir  string

	FS    types.FS
	Paths paths.Paths

	t *testing.T
}

// NewTestEnvironment redirects every gim path into t.TempDir()
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:      root,
		ConfigDir: filepath.Join(root, "config"),
		SSHDir:    filepath.Join(root, "ssh"),
		StateDir:  filepath.Join(root, "state"),
		FS:        filesystem.NewOS(),
		t:         t,
	}

	t.Setenv(paths.EnvGimConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvGimSSHDir, env.SSHDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)

	p, err := paths.New("")
	require.NoError(t, err)
	env.Paths = p

	return env
}

// WriteFile writes content relative to the environment root
func (e *TestEnvironment) WriteFile(rel, content string, perm os.FileMode) string {
	e.t.Helper()

	path := filepath.Join(e.Root, rel)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(e.t, os.WriteFile(path, []byte(content), perm))
	return path
}

// ReadFile returns the content of an absolute path, failing the test if absent
func (e *TestEnvironment) ReadFile(path string) string {
	e.t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(e.t, err)
	return string(data)
}

// FileExists reports whether path exists
func (e *TestEnvironment) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
