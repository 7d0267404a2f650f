package gim

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/testutil"
)

// execute runs gim with args, feeding input to prompts
func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestRoot_NoCommand(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := execute(t, "")
	require.Error(t, err)
	assert.True(t, IsUsageError(err))
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, out, "IDENTITIES:")
}

func TestRoot_UnknownCommand(t *testing.T) {
	testutil.NewTestEnvironment(t)

	_, err := execute(t, "", "bogus")
	require.Error(t, err)
	assert.True(t, IsUsageError(err))
}

func TestRoot_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"add needs three arguments", []string{"add", "work"}},
		{"switch needs an alias", []string{"switch"}},
		{"remove alias with --all", []string{"remove", "work", "--all"}},
		{"remove without target", []string{"remove"}},
		{"clone without url", []string{"clone", "work"}},
		{"clone with too many positionals", []string{"clone", "work", "git@github.com:a/b.git", "dest", "extra"}},
		{"unknown flag", []string{"list", "--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.NewTestEnvironment(t)

			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.True(t, IsUsageError(err), "got %v", err)
		})
	}
}

func TestVersionCmd(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "gim dev"))
}

func TestCompletionCmd(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := execute(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "gim")

	_, err = execute(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := execute(t, "", "help", "topics")
	require.NoError(t, err)
	for _, topic := range []string{"identities", "ssh-config", "probing", "configuration", "--force"} {
		assert.Contains(t, out, topic)
	}

	out, err = execute(t, "", "help", "ssh-config")
	require.NoError(t, err)
	assert.Contains(t, out, "IdentitiesOnly")
}

func TestAddAndRemove(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	out, err := execute(t, "", "add", "work", "Jane Doe", "jane@company.example")
	require.NoError(t, err)
	assert.Contains(t, out, "Created identity work Jane Doe <jane@company.example>")
	assert.Contains(t, out, "ssh-ed25519 ")
	assert.Contains(t, out, "gim switch work")
	assert.True(t, env.FileExists(env.Paths.PrivateKeyPath("work", "ed25519")))

	_, err = execute(t, "", "add", "work", "Jane Doe", "jane@company.example")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	out, err = execute(t, "", "remove", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed work")
	assert.False(t, env.FileExists(env.Paths.PrivateKeyPath("work", "ed25519")))

	_, err = execute(t, "", "remove", "work")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestAdd_DeclinedOverwrite(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	keyPath := env.WriteFile("ssh/id_ed25519_work", "old key", 0600)

	out, err := execute(t, "n\n", "add", "work", "Jane Doe", "jane@company.example")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled), "got %v", err)
	assert.Contains(t, out, "already exists")
	assert.Equal(t, "old key", env.ReadFile(keyPath))

	_, err = execute(t, "", "add", "work", "Jane Doe", "jane@company.example", "--force")
	require.NoError(t, err)
	assert.NotEqual(t, "old key", env.ReadFile(keyPath))
}

func TestRemoveAll_Confirmation(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	_, err := execute(t, "", "add", "work", "W", "w@company.example")
	require.NoError(t, err)
	_, err = execute(t, "", "add", "oss", "O", "o@users.example")
	require.NoError(t, err)

	out, err := execute(t, "no\n", "remove", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing removed")
	assert.True(t, env.FileExists(env.Paths.PrivateKeyPath("work", "ed25519")))

	out, err = execute(t, "", "remove", "--all", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed oss")
	assert.Contains(t, out, "Removed work")
	assert.False(t, env.FileExists(env.Paths.PrivateKeyPath("oss", "ed25519")))
}

func TestList_ExitsNonZeroOnIssues(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	t.Setenv("GIM_PROBE_SSH_BINARY", env.Root+"/no-such-ssh")

	_, err := execute(t, "", "add", "work", "W", "w@company.example")
	require.NoError(t, err)

	out, err := execute(t, "", "list")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.False(t, IsUsageError(err))
	assert.Contains(t, out, "✓ Key")
	assert.Contains(t, out, "✓ Config")
	assert.Contains(t, out, "✗ Connection")
	assert.Contains(t, out, "0 of 1 identities healthy")
}

func TestList_Empty(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No identities configured")
}

func TestCurrent_OutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	testutil.NewTestEnvironment(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := execute(t, "", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "Not inside a git repository")
}

func TestSplitCloneArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		destination string
		passthrough []string
	}{
		{"positionals only", []string{"work", "git@github.com:o/r.git"}, "", nil},
		{"destination", []string{"work", "git@github.com:o/r.git", "src/r"}, "src/r", nil},
		{"bare flags", []string{"work", "git@github.com:o/r.git", "--depth", "1"}, "", []string{"--depth", "1"}},
		{"destination and flags", []string{"work", "git@github.com:o/r.git", "src/r", "--branch", "dev"}, "src/r", []string{"--branch", "dev"}},
		{"dash separator dropped", []string{"work", "git@github.com:o/r.git", "--", "--depth", "1"}, "", []string{"--depth", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := splitCloneArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, "work", parsed.alias)
			assert.Equal(t, "git@github.com:o/r.git", parsed.url)
			assert.Equal(t, tt.destination, parsed.destination)
			assert.Equal(t, tt.passthrough, parsed.passthrough)
		})
	}

	_, err := splitCloneArgs([]string{"work", "--depth", "1"})
	assert.True(t, IsUsageError(err))
}

func TestClone_ForwardsGitFlags(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as git")
	}
	env := testutil.NewTestEnvironment(t)

	argsFile := filepath.Join(env.Root, "git-args")
	fakeGit := env.WriteFile("bin/git", "#!/bin/sh\nprintf '%s\\n' \"$@\" >> \""+argsFile+"\"\nexit 128\n", 0755)
	t.Setenv("GIM_GIT_BINARY", fakeGit)

	_, err := execute(t, "", "add", "work", "W", "w@company.example")
	require.NoError(t, err)

	_, err = execute(t, "", "clone", "work", "git@github.com:o/r.git", "--depth", "1")
	require.Error(t, err)
	assert.False(t, IsUsageError(err), "got %v", err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCloneFailed), "got %v", err)

	recorded := env.ReadFile(argsFile)
	assert.Contains(t, recorded, "clone\n--depth\n1\n--\n")
}

func TestClone_Help(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := execute(t, "", "clone", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "passed to git clone")
}
