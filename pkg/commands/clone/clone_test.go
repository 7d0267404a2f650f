package clone

import (
	"context"
	"testing"

	"github.com/arthur-debert/gim/pkg/commands/add"
	"github.com/arthur-debert/gim/pkg/commands/common"
	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/testutil"
	"github.com/arthur-debert/gim/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClone(t *testing.T) {
	testutil.NewTestEnvironment(t)
	_, err := add.Add(add.AddOptions{Alias: "work", Name: "Jane", Email: "jane@company.com"})
	require.NoError(t, err)

	git := &testutil.MockGitClient{}
	git.On("Clone", mock.Anything, "/src", "git@github-work:acme/tool.git", "mytool", []string{"--branch", "dev"}).Return(nil)
	git.On("IsInsideWorkTree", mock.Anything, "/src/mytool").Return(true, nil)
	git.On("SetConfig", mock.Anything, "/src/mytool", mock.Anything, mock.Anything).Return(nil)
	git.On("Remotes", mock.Anything, "/src/mytool").Return([]types.Remote{
		{Name: "origin", URL: "git@github-work:acme/tool.git"},
	}, nil)

	result, err := Clone(context.Background(), CloneOptions{
		Env:         common.Env{Git: git},
		Alias:       "work",
		URL:         "git@github.com:acme/tool.git",
		Destination: "mytool",
		Dir:         "/src",
		Passthrough: []string{"--branch", "dev"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/src/mytool", result.Destination)
	git.AssertExpectations(t)
}

func TestClone_RejectsHTTPS(t *testing.T) {
	testutil.NewTestEnvironment(t)
	_, err := add.Add(add.AddOptions{Alias: "work", Name: "Jane", Email: "jane@company.com"})
	require.NoError(t, err)

	git := &testutil.MockGitClient{}
	_, err = Clone(context.Background(), CloneOptions{
		Env:   common.Env{Git: git},
		Alias: "work",
		URL:   "https://github.com/acme/tool.git",
		Dir:   "/src",
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedURLScheme))
	git.AssertNotCalled(t, "Clone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
