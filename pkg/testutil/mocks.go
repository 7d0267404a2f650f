package testutil

import (
	"context"

	"github.com/arthur-debert/gim/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock of types.GitClient
type MockGitClient struct {
	mock.Mock
}

var _ types.GitClient = (*MockGitClient)(nil)

func (m *MockGitClient) IsInsideWorkTree(ctx context.Context, dir string) (bool, error) {
	args := m.Called(ctx, dir)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitClient) GetConfig(ctx context.Context, dir, key string) (string, error) {
	args := m.Called(ctx, dir, key)
	return args.String(0), args.Error(1)
}

func (m *MockGitClient) SetConfig(ctx context.Context, dir, key, value string) error {
	args := m.Called(ctx, dir, key, value)
	return args.Error(0)
}

func (m *MockGitClient) Remotes(ctx context.Context, dir string) ([]types.Remote, error) {
	args := m.Called(ctx, dir)
	remotes, _ := args.Get(0).([]types.Remote)
	return remotes, args.Error(1)
}

func (m *MockGitClient) SetRemoteURL(ctx context.Context, dir, name, url string) error {
	args := m.Called(ctx, dir, name, url)
	return args.Error(0)
}

func (m *MockGitClient) Clone(ctx context.Context, dir, url, dest string, extraArgs []string) error {
	args := m.Called(ctx, dir, url, dest, extraArgs)
	return args.Error(0)
}

// MockProber is a testify mock of types.Prober
type MockProber struct {
	mock.Mock
}

var _ types.Prober = (*MockProber)(nil)

func (m *MockProber) Probe(ctx context.Context, target types.ProbeTarget) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

// ProberFunc adapts a function to types.Prober
type ProberFunc func(ctx context.Context, target types.ProbeTarget) error

func (f ProberFunc) Probe(ctx context.Context, target types.ProbeTarget) error {
	return f(ctx, target)
}
