package current

import (
	"context"

	"github.com/arthur-debert/gim/pkg/commands/common"
	"github.com/arthur-debert/gim/pkg/gitctx"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// CurrentOptions defines the options for the current command
type CurrentOptions struct {
	common.Env

	// Dir is any path inside the repository to inspect
	Dir string
}

// Current reports which identity the repository at Dir uses
func Current(ctx context.Context, opts CurrentOptions) (*types.CurrentResult, error) {
	log := logging.GetLogger("commands.current")
	log.Debug().Str("command", "Current").Str("dir", opts.Dir).Msg("Executing command")

	svc, err := common.Load(opts.Env)
	if err != nil {
		return nil, err
	}

	return gitctx.New(svc.Git, svc.Store).CurrentIdentity(ctx, opts.Dir)
}
