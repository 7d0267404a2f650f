package current

import (
	"context"
	"testing"

	"github.com/arthur-debert/gim/pkg/commands/add"
	"github.com/arthur-debert/gim/pkg/commands/common"
	"github.com/arthur-debert/gim/pkg/testutil"
	"github.com/arthur-debert/gim/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	testutil.NewTestEnvironment(t)
	_, err := add.Add(add.AddOptions{Alias: "work", Name: "Jane", Email: "jane@company.com"})
	require.NoError(t, err)

	git := &testutil.MockGitClient{}
	git.On("IsInsideWorkTree", mock.Anything, "/repo").Return(true, nil)
	git.On("GetConfig", mock.Anything, "/repo", "user.name").Return("Jane", nil)
	git.On("GetConfig", mock.Anything, "/repo", "user.email").Return("jane@company.com", nil)
	git.On("Remotes", mock.Anything, "/repo").Return([]types.Remote{
		{Name: "origin", URL: "git@github-work:org/repo.git"},
	}, nil)

	result, err := Current(context.Background(), CurrentOptions{Env: common.Env{Git: git}, Dir: "/repo"})
	require.NoError(t, err)
	assert.True(t, result.Managed)
	assert.Equal(t, "work", result.Alias)
	assert.Len(t, result.Remotes, 1)
}
