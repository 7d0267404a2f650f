package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// DefaultBinary is the git executable looked up on PATH
const DefaultBinary = "git"

// exitCodeTimeout is reported when the context expires before git exits
const exitCodeTimeout = 124

// result is the captured outcome of one git invocation
type result struct {
	Stdout string
	Stderr string
	Code   int
	Err    error
}

// message returns the most useful text git produced for a failure
func (r result) message() string {
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(r.Stdout); msg != "" {
		return msg
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return "unknown error"
}

// Client runs the git binary
type Client struct {
	binary string
}

var _ types.GitClient = (*Client)(nil)

// New returns a client for binary, or for git on PATH when binary is empty
func New(binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{binary: binary}
}

func (c *Client) run(ctx context.Context, dir string, args ...string) result {
	logger := logging.GetLogger("git")
	full := append([]string{"-C", dir}, args...)
	logging.LogCommand(logger, c.binary, full)

	cmd := exec.CommandContext(ctx, c.binary, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	code := 0
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
		} else {
			code = 1
		}
		if ctx.Err() == context.DeadlineExceeded {
			code = exitCodeTimeout
		}
	}
	logging.LogCommandExit(logger, c.binary, code)
	return result{Stdout: stdout.String(), Stderr: stderr.String(), Code: code, Err: err}
}

// IsInsideWorkTree reports whether dir belongs to a git working tree. A
// missing git binary is an error; "not a git repository" is not.
func (c *Client) IsInsideWorkTree(ctx context.Context, dir string) (bool, error) {
	res := c.run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	if res.Err != nil {
		if _, ok := res.Err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, errors.Wrap(res.Err, errors.ErrGitCommand, "failed to run git")
	}
	return strings.TrimSpace(res.Stdout) == "true", nil
}

// GetConfig returns the effective value of key; git exits 1 for unset keys
func (c *Client) GetConfig(ctx context.Context, dir, key string) (string, error) {
	res := c.run(ctx, dir, "config", "--get", key)
	if res.Err != nil {
		if res.Code == 1 {
			return "", nil
		}
		return "", errors.Wrapf(res.Err, errors.ErrGitCommand, "git config --get %s: %s", key, res.message()).
			WithDetail("dir", dir)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// SetConfig writes key to the repository-local config
func (c *Client) SetConfig(ctx context.Context, dir, key, value string) error {
	res := c.run(ctx, dir, "config", "--local", key, value)
	if res.Err != nil {
		return errors.Wrapf(res.Err, errors.ErrGitCommand, "git config %s: %s", key, res.message()).
			WithDetail("dir", dir)
	}
	return nil
}

// Remotes lists remotes with their fetch URLs, in config order
func (c *Client) Remotes(ctx context.Context, dir string) ([]types.Remote, error) {
	res := c.run(ctx, dir, "config", "--local", "--get-regexp", `^remote\..*\.url$`)
	if res.Err != nil {
		// No matching keys
		if res.Code == 1 {
			return []types.Remote{}, nil
		}
		return nil, errors.Wrapf(res.Err, errors.ErrGitCommand, "failed to list remotes: %s", res.message()).
			WithDetail("dir", dir)
	}
	return parseRemotes(res.Stdout), nil
}

// parseRemotes reads "remote.<name>.url <url>" lines. Remote names may
// contain dots, so the name is everything between the fixed prefix and suffix.
func parseRemotes(out string) []types.Remote {
	remotes := []types.Remote{}
	seen := map[string]bool{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, url, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, "remote."), ".url")
		// Multiple url entries: the first is the fetch URL
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		remotes = append(remotes, types.Remote{Name: name, URL: strings.TrimSpace(url)})
	}
	return remotes
}

// SetRemoteURL replaces the URL of a remote
func (c *Client) SetRemoteURL(ctx context.Context, dir, name, url string) error {
	res := c.run(ctx, dir, "remote", "set-url", name, url)
	if res.Err != nil {
		return errors.Wrapf(res.Err, errors.ErrGitCommand, "failed to set url of remote %s: %s", name, res.message()).
			WithDetail("remote", name)
	}
	return nil
}

// Clone clones url into dest. extraArgs go before the url so flags such as
// --depth or --branch are interpreted by git clone.
func (c *Client) Clone(ctx context.Context, dir, url, dest string, extraArgs []string) error {
	args := []string{"clone"}
	args = append(args, extraArgs...)
	args = append(args, "--", url, dest)

	res := c.run(ctx, dir, args...)
	if res.Err != nil {
		return errors.Wrap(res.Err, errors.ErrCloneFailed, res.message()).
			WithDetail("url", url).
			WithDetail("exitCode", res.Code)
	}
	return nil
}
