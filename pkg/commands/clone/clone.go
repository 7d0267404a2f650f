package clone

import (
	"context"

	"github.com/arthur-debert/gim/pkg/commands/common"
	"github.com/arthur-debert/gim/pkg/gitctx"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// CloneOptions defines the options for the clone command
type CloneOptions struct {
	common.Env

	Alias string
	URL   string
	// Destination defaults to the repository name
	Destination string
	// Dir is where the clone is created
	Dir string
	// Passthrough is forwarded verbatim to git clone
	Passthrough []string
}

// Clone clones URL through an identity and switches the new working tree
func Clone(ctx context.Context, opts CloneOptions) (*types.CloneResult, error) {
	log := logging.GetLogger("commands.clone")
	log.Debug().
		Str("command", "Clone").
		Str("alias", opts.Alias).
		Str("url", opts.URL).
		Strs("passthrough", opts.Passthrough).
		Msg("Executing command")

	svc, err := common.Load(opts.Env)
	if err != nil {
		return nil, err
	}

	return gitctx.New(svc.Git, svc.Store).
		CloneWithIdentity(ctx, opts.Dir, opts.Alias, opts.URL, opts.Destination, opts.Passthrough)
}
