package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/gim/pkg/errors"
)

// Environment variable names
const (
	// EnvGimConfigDir overrides the XDG config directory for gim
	EnvGimConfigDir = "GIM_CONFIG_DIR"

	// EnvGimSSHDir overrides the SSH directory (~/.ssh)
	EnvGimSSHDir = "GIM_SSH_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the managed directories. These are not user
// configurable: records written by one gim install must be found by another.
const (
	GimDirName        = "gim"
	IdentitiesDirName = "identities"
	ConfigFileName    = "config.toml"
	RecordExtension   = ".toml"
	SSHConfigFileName = "config"
	KnownHostsName    = "known_hosts"
	LogFileName       = "gim.log"
)

// Paths provides centralized path management for gim
type Paths interface {
	ConfigDir() string
	ConfigFile() string
	IdentitiesDir() string
	RecordPath(alias string) string
	SSHDir() string
	SSHConfigPath() string
	KnownHostsPath() string
	PrivateKeyPath(alias, algorithm string) string
	PublicKeyPath(alias, algorithm string) string
	StateDir() string
	LogFilePath() string
}

type paths struct {
	configDir string
	sshDir    string
	stateDir  string
}

// New creates a Paths instance. sshDir, when non-empty, takes precedence over
// GIM_SSH_DIR and the ~/.ssh default.
func New(sshDir string) (Paths, error) {
	p := &paths{}

	if configDir := os.Getenv(EnvGimConfigDir); configDir != "" {
		p.configDir = expandHome(configDir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, GimDirName)
	}

	switch {
	case sshDir != "":
		p.sshDir = expandHome(sshDir)
	case os.Getenv(EnvGimSSHDir) != "":
		p.sshDir = expandHome(os.Getenv(EnvGimSSHDir))
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
		}
		p.sshDir = filepath.Join(home, ".ssh")
	}

	// XDG_STATE_HOME is read directly so tests can redirect it after init
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.stateDir = filepath.Join(stateHome, GimDirName)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, GimDirName)
	}

	for _, dir := range []*string{&p.configDir, &p.sshDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

func (p *paths) ConfigDir() string { return p.configDir }

func (p *paths) ConfigFile() string { return filepath.Join(p.configDir, ConfigFileName) }

func (p *paths) IdentitiesDir() string { return filepath.Join(p.configDir, IdentitiesDirName) }

// RecordPath returns the record file for an alias. The alias must already be
// validated; it is used verbatim as the filename stem.
func (p *paths) RecordPath(alias string) string {
	return filepath.Join(p.IdentitiesDir(), alias+RecordExtension)
}

func (p *paths) SSHDir() string { return p.sshDir }

func (p *paths) SSHConfigPath() string { return filepath.Join(p.sshDir, SSHConfigFileName) }

func (p *paths) KnownHostsPath() string { return filepath.Join(p.sshDir, KnownHostsName) }

// PrivateKeyPath follows the ssh-keygen naming convention with the alias as
// suffix, e.g. ~/.ssh/id_ed25519_work.
func (p *paths) PrivateKeyPath(alias, algorithm string) string {
	return filepath.Join(p.sshDir, fmt.Sprintf("id_%s_%s", algorithm, alias))
}

func (p *paths) PublicKeyPath(alias, algorithm string) string {
	return p.PrivateKeyPath(alias, algorithm) + ".pub"
}

func (p *paths) StateDir() string { return p.stateDir }

func (p *paths) LogFilePath() string { return filepath.Join(p.stateDir, LogFileName) }

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if path == "~" {
		return homeDir
	}
	if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
