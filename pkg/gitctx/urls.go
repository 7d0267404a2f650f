package gitctx

import (
	"regexp"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/types"
)

var (
	// git@<host>:<path>
	sshShorthandPattern = regexp.MustCompile(`^git@([^:/\s]+):(\S+)$`)

	// git@github.com:<org>/<repo>[.git]
	cloneSourcePattern = regexp.MustCompile(`^git@github\.com:([^/\s]+)/([^/\s]+?)(\.git)?$`)
)

// RewriteRemoteURL routes an SSH shorthand URL through hostAlias. ok is false
// for URLs of any other form, which callers leave untouched.
func RewriteRemoteURL(url, hostAlias string) (string, bool) {
	m := sshShorthandPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return types.GitUser + "@" + hostAlias + ":" + m[2], true
}

// cloneSource is a parsed clone URL
type cloneSource struct {
	Org    string
	Repo   string
	Suffix string
}

func parseCloneSource(url string) (*cloneSource, error) {
	m := cloneSourcePattern.FindStringSubmatch(url)
	if m == nil {
		return nil, errors.Newf(errors.ErrUnsupportedURLScheme,
			"unsupported URL %q: expected git@github.com:<org>/<repo>[.git]", url).
			WithDetail("url", url)
	}
	return &cloneSource{Org: m[1], Repo: m[2], Suffix: m[3]}, nil
}

// urlFor renders the source URL routed through hostAlias
func (c *cloneSource) urlFor(hostAlias string) string {
	return types.GitUser + "@" + hostAlias + ":" + c.Org + "/" + c.Repo + c.Suffix
}
