package switchto

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

func TestSwitch(t *testing.T) {
	testutil.NewTestEnvironment(t)
	_, err := add.Add(add.AddOptions{Alias: "work", Name: "Jane", Email: "jane@company.com"})
	require.NoError(t, err)

	git := &testutil.MockGitClient{}
	git.On("IsInsideWorkTree", mock.Anything, "/repo").Return(true, nil)
	git.On("SetConfig", mock.Anything, "/repo", "user.name", "Jane").Return(nil)
	git.On("SetConfig", mock.Anything, "/repo", "user.email", "jane@company.com").Return(nil)
	git.On("Remotes", mock.Anything, "/repo").Return([]types.Remote{
		{Name: "origin", URL: "git@github.com:org/repo.git"},
	}, nil)
	git.On("SetRemoteURL", mock.Anything, "/repo", "origin", "git@github-work:org/repo.git").Return(nil)

	result, err := Switch(context.Background(), SwitchOptions{Env: common.Env{Git: git}, Alias: "work", Dir: "/repo"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated())
	git.AssertExpectations(t)
}
