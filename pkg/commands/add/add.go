package add

import (
	"github.com/arthur-debert/gim/pkg/commands/common"
	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/identity"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// AddOptions holds options for the add command
type AddOptions struct {
	common.Env

	Alias string
	Name  string
	Email string
	// Algorithm overrides key.algorithm for this identity
	Algorithm string
	// Force overwrites an existing keypair without asking
	Force bool
	// Dialog confirms a key overwrite; nil declines it
	Dialog types.ConfirmationDialog
}

// Add validates the input, generates a keypair, stores the record and points
// the SSH config at the new key. Steps already completed are not undone when
// a later one fails.
func Add(opts AddOptions) (*types.AddResult, error) {
	logger := logging.GetLogger("commands.add")
	logger.Info().Str("alias", opts.Alias).Msg("Adding identity")

	if err := identity.ValidateAlias(opts.Alias); err != nil {
		return nil, err
	}
	if err := identity.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if err := identity.ValidateEmail(opts.Email); err != nil {
		return nil, err
	}

	svc, err := common.Load(opts.Env)
	if err != nil {
		return nil, err
	}

	exists, err := svc.Store.Exists(opts.Alias)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Newf(errors.ErrAlreadyExists, "identity '%s' already exists", opts.Alias).
			WithDetail("alias", opts.Alias)
	}

	overwrite := false
	if existing, ok := svc.Keys.FindPrivateKey(opts.Alias); ok {
		if !opts.Force {
			approved, err := confirmOverwrite(opts.Dialog, opts.Alias, existing)
			if err != nil {
				return nil, err
			}
			if !approved {
				return nil, errors.Newf(errors.ErrCancelled, "kept existing key %s", existing).
					WithDetail("path", existing)
			}
		}
		overwrite = true
	}

	pair, err := svc.Keys.Generate(opts.Alias, opts.Email, opts.Algorithm)
	if err != nil {
		return nil, err
	}

	id, err := svc.Store.Create(opts.Alias, opts.Name, opts.Email)
	if err != nil {
		return nil, err
	}

	if err := svc.SSH.UpsertHostBlock(id.HostAlias, pair.PrivateKeyPath); err != nil {
		return nil, err
	}

	logger.Info().
		Str("alias", id.Alias).
		Str("host", id.HostAlias).
		Str("fingerprint", pair.Fingerprint).
		Msg("Identity added")

	return &types.AddResult{
		Identity:       *id,
		PrivateKeyPath: pair.PrivateKeyPath,
		PublicKeyPath:  pair.PublicKeyPath,
		PublicKey:      pair.PublicKey,
		Fingerprint:    pair.Fingerprint,
		SSHConfigPath:  svc.SSH.Path(),
		KeyOverwritten: overwrite,
	}, nil
}

func confirmOverwrite(dialog types.ConfirmationDialog, alias, path string) (bool, error) {
	if dialog == nil {
		return false, nil
	}
	return dialog.Confirm(types.ConfirmationRequest{
		ID:          "overwrite-key",
		Title:       "A key for '" + alias + "' already exists",
		Description: "Overwrite " + path + "?",
		Items:       []string{path},
		Default:     false,
	})
}
