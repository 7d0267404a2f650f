package gitctx

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/identity"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// Switcher applies identities to git working trees
type Switcher struct {
	git   types.GitClient
	store *identity.Store
}

// New creates a Switcher
func New(git types.GitClient, store *identity.Store) *Switcher {
	return &Switcher{git: git, store: store}
}

// Switch points the working tree containing dir at alias
func (s *Switcher) Switch(ctx context.Context, dir, alias string) (*types.SwitchResult, error) {
	logger := logging.GetLogger("gitctx")

	id, err := s.store.Read(alias)
	if err != nil {
		return nil, err
	}

	if err := s.requireRepository(ctx, dir); err != nil {
		return nil, err
	}

	if err := s.git.SetConfig(ctx, dir, "user.name", id.Name); err != nil {
		return nil, err
	}
	if err := s.git.SetConfig(ctx, dir, "user.email", id.Email); err != nil {
		return nil, err
	}

	remotes, err := s.git.Remotes(ctx, dir)
	if err != nil {
		return nil, err
	}

	result := &types.SwitchResult{
		Identity:     *id,
		RepoDir:      dir,
		Changes:      []types.RemoteChange{},
		TotalRemotes: len(remotes),
	}

	for _, remote := range remotes {
		newURL, ok := RewriteRemoteURL(remote.URL, id.HostAlias)
		if !ok {
			logger.Debug().Str("remote", remote.Name).Str("url", remote.URL).Msg("Leaving non-SSH remote untouched")
			continue
		}
		if newURL == remote.URL {
			continue
		}
		if err := s.git.SetRemoteURL(ctx, dir, remote.Name, newURL); err != nil {
			return nil, err
		}
		result.Changes = append(result.Changes, types.RemoteChange{
			Name:   remote.Name,
			OldURL: remote.URL,
			NewURL: newURL,
		})
	}

	logger.Info().
		Str("alias", alias).
		Str("dir", dir).
		Int("updated", result.Updated()).
		Int("remotes", result.TotalRemotes).
		Msg("Switched repository identity")

	return result, nil
}

// CloneWithIdentity clones sourceURL through alias's host alias into dest,
// relative to dir, and switches the new working tree. An empty dest means the
// repository name. A failed switch leaves the clone in place.
func (s *Switcher) CloneWithIdentity(ctx context.Context, dir, alias, sourceURL, dest string, passthrough []string) (*types.CloneResult, error) {
	logger := logging.GetLogger("gitctx")

	id, err := s.store.Read(alias)
	if err != nil {
		return nil, err
	}

	source, err := parseCloneSource(sourceURL)
	if err != nil {
		return nil, err
	}

	if dest == "" {
		dest = source.Repo
	}
	clonedURL := source.urlFor(id.HostAlias)

	logger.Info().Str("alias", alias).Str("url", clonedURL).Str("dest", dest).Msg("Cloning repository")
	if err := s.git.Clone(ctx, dir, clonedURL, dest, passthrough); err != nil {
		if errors.IsErrorCode(err, errors.ErrCloneFailed) {
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrCloneFailed, "failed to clone %s", clonedURL)
	}

	target := dest
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, dest)
	}

	result := &types.CloneResult{
		Identity:    *id,
		SourceURL:   sourceURL,
		ClonedURL:   clonedURL,
		Destination: target,
	}

	switched, err := s.Switch(ctx, target, alias)
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrPostCloneSwitch,
			"cloned into %s but could not switch it to '%s'", target, alias).
			WithDetail("destination", target)
	}
	result.Switch = switched

	return result, nil
}

// CurrentIdentity reports which stored identity the repository's name and
// email belong to. Being outside a repository or matching no identity is
// reported as unmanaged, not as an error. When several identities share the
// same name and email the first in enumeration order wins.
func (s *Switcher) CurrentIdentity(ctx context.Context, dir string) (*types.CurrentResult, error) {
	logger := logging.GetLogger("gitctx")

	inside, err := s.git.IsInsideWorkTree(ctx, dir)
	if err != nil {
		return nil, err
	}
	result := &types.CurrentResult{InRepository: inside, Remotes: []types.Remote{}}
	if !inside {
		return result, nil
	}

	if result.Name, err = s.git.GetConfig(ctx, dir, "user.name"); err != nil {
		return nil, err
	}
	if result.Email, err = s.git.GetConfig(ctx, dir, "user.email"); err != nil {
		return nil, err
	}
	if result.Remotes, err = s.git.Remotes(ctx, dir); err != nil {
		return nil, err
	}

	aliases, err := s.store.List()
	if err != nil {
		return nil, err
	}
	for _, alias := range aliases {
		id, err := s.store.Read(alias)
		if err != nil {
			logger.Warn().Err(err).Str("alias", alias).Msg("Skipping unreadable identity record")
			continue
		}
		if id.Name == result.Name && id.Email == result.Email {
			result.Managed = true
			result.Alias = alias
			break
		}
	}

	return result, nil
}

func (s *Switcher) requireRepository(ctx context.Context, dir string) error {
	inside, err := s.git.IsInsideWorkTree(ctx, dir)
	if err != nil {
		return err
	}
	if !inside {
		return errors.Newf(errors.ErrNotInsideRepository, "%s is not inside a git working tree", dir).
			WithDetail("dir", dir)
	}
	return nil
}
