package switchto

import (
	"context"

	"github.com/arthur-debert/gim/pkg/commands/common"
	"github.com/arthur-debert/gim/pkg/gitctx"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// SwitchOptions defines the options for the switch command
type SwitchOptions struct {
	common.Env

	Alias string
	// Dir is any path inside the repository to switch
	Dir string
}

// Switch points the repository at Dir to an identity
func Switch(ctx context.Context, opts SwitchOptions) (*types.SwitchResult, error) {
	log := logging.GetLogger("commands.switch")
	log.Debug().Str("command", "Switch").Str("alias", opts.Alias).Str("dir", opts.Dir).Msg("Executing command")

	svc, err := common.Load(opts.Env)
	if err != nil {
		return nil, err
	}

	return gitctx.New(svc.Git, svc.Store).Switch(ctx, opts.Dir, opts.Alias)
}
