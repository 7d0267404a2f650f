package remove

import (
	"github.com/arthur-debert/gim/pkg/commands/common"
	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/identity"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// RemoveOptions holds options for the remove command
type RemoveOptions struct {
	common.Env

	// Alias is the identity to remove; ignored when All is set
	Alias string
	All   bool
	// Dialog confirms removing everything; nil means approved
	Dialog types.ConfirmationDialog
}

// Remove deletes an identity's record, key files and SSH config block, or
// those of every identity when All is set. Removing an alias with nothing
// left on disk is NotFound.
func Remove(opts RemoveOptions) (*types.RemoveResult, error) {
	logger := logging.GetLogger("commands.remove")

	if !opts.All {
		if err := identity.ValidateAlias(opts.Alias); err != nil {
			return nil, err
		}
	}

	svc, err := common.Load(opts.Env)
	if err != nil {
		return nil, err
	}

	if !opts.All {
		removed, err := removeOne(svc, opts.Alias)
		if err != nil {
			return nil, err
		}
		if !removed.Found() {
			return nil, errors.Newf(errors.ErrNotFound, "identity '%s' not found", opts.Alias).
				WithDetail("alias", opts.Alias)
		}
		logger.Info().Str("alias", opts.Alias).Msg("Identity removed")
		return &types.RemoveResult{Removed: []types.RemovedIdentity{removed}}, nil
	}

	aliases, err := svc.Store.List()
	if err != nil {
		return nil, err
	}

	if opts.Dialog != nil {
		approved, err := opts.Dialog.Confirm(types.ConfirmationRequest{
			ID:          "remove-all",
			Title:       "Removing every identity",
			Description: "Delete all identity records, keys and SSH config blocks?",
			Items:       aliases,
			Default:     false,
		})
		if err != nil {
			return nil, err
		}
		if !approved {
			logger.Info().Msg("Remove all cancelled")
			return &types.RemoveResult{Cancelled: true}, nil
		}
	}

	result := &types.RemoveResult{Removed: make([]types.RemovedIdentity, 0, len(aliases))}
	for _, alias := range aliases {
		removed, err := removeOne(svc, alias)
		if err != nil {
			return result, err
		}
		result.Removed = append(result.Removed, removed)
	}

	orphans, err := svc.SSH.RemoveHostBlocksWithPrefix(types.HostAliasPrefix)
	if err != nil {
		return result, err
	}
	result.OrphanBlocks = orphans

	logger.Info().
		Int("identities", len(result.Removed)).
		Int("orphanBlocks", len(orphans)).
		Msg("All identities removed")
	return result, nil
}

// removeOne deletes everything belonging to alias. Each step tolerates the
// item already being gone.
func removeOne(svc *common.Services, alias string) (types.RemovedIdentity, error) {
	removed := types.RemovedIdentity{Alias: alias}

	blockRemoved, err := svc.SSH.RemoveHostBlock(types.HostAliasFor(alias))
	if err != nil {
		return removed, err
	}
	removed.BlockRemoved = blockRemoved

	keyFiles, err := svc.Keys.Remove(alias)
	removed.KeysRemoved = keyFiles
	if err != nil {
		return removed, err
	}

	recordRemoved, err := svc.Store.Delete(alias)
	if err != nil {
		return removed, err
	}
	removed.RecordRemoved = recordRemoved

	return removed, nil
}
