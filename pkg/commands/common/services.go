// Package common wires the components every gim command works with.
package common

import (
	"github.com/arthur-debert/gim/pkg/config"
	"github.com/arthur-debert/gim/pkg/filesystem"
	"github.com/arthur-debert/gim/pkg/git"
	"github.com/arthur-debert/gim/pkg/identity"
	"github.com/arthur-debert/gim/pkg/keys"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/paths"
	"github.com/arthur-debert/gim/pkg/probe"
	"github.com/arthur-debert/gim/pkg/sshconfig"
	"github.com/arthur-debert/gim/pkg/types"
)

// Env selects where a command operates. Zero values mean the defaults; Git
// and Prober are replaced by fakes in tests.
type Env struct {
	// SSHDir overrides ssh.dir and GIM_SSH_DIR
	SSHDir string
	FS     types.FS
	Git    types.GitClient
	Prober types.Prober
}

// Services is the set of components a command runs against
type Services struct {
	Config *config.Config
	Paths  paths.Paths
	FS     types.FS
	Store  *identity.Store
	Keys   *keys.Provisioner
	SSH    *sshconfig.Synchronizer
	Git    types.GitClient
	Prober types.Prober
}

// Load resolves configuration and paths and builds the services for env
func Load(env Env) (*Services, error) {
	logger := logging.GetLogger("commands")

	p, err := paths.New(env.SSHDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(p.ConfigFile())
	if err != nil {
		return nil, err
	}

	// ssh.dir from the config file applies unless the caller chose a directory
	if env.SSHDir == "" && cfg.SSH.Dir != "" {
		if p, err = paths.New(cfg.SSH.Dir); err != nil {
			return nil, err
		}
	}

	fs := env.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	s := &Services{
		Config: cfg,
		Paths:  p,
		FS:     fs,
		Store:  identity.New(fs, p),
		Keys:   keys.New(fs, p, cfg.Key.Algorithm, cfg.Key.RSABits),
		SSH:    sshconfig.New(fs, p.SSHConfigPath()),
		Git:    env.Git,
		Prober: env.Prober,
	}

	if s.Git == nil {
		s.Git = git.New(cfg.Git.Binary)
	}
	if s.Prober == nil {
		if s.Prober, err = probe.New(cfg.Probe, fs, p.KnownHostsPath()); err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Str("configDir", p.ConfigDir()).
		Str("sshDir", p.SSHDir()).
		Str("algorithm", cfg.Key.Algorithm).
		Str("probeMode", cfg.Probe.Mode).
		Msg("Services loaded")

	return s, nil
}
