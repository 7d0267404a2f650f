package sshconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// Synchronizer edits the host blocks of one SSH client configuration file
type Synchronizer struct {
	fs   types.FS
	path string
}

// New creates a synchronizer for the config file at path
func New(fs types.FS, path string) *Synchronizer {
	return &Synchronizer{fs: fs, path: path}
}

// Path returns the managed config file
func (s *Synchronizer) Path() string {
	return s.path
}

// UpsertHostBlock replaces any block for hostAlias with a fresh one pointing
// at keyPath, appended at the end of the file.
func (s *Synchronizer) UpsertHostBlock(hostAlias, keyPath string) error {
	logger := logging.GetLogger("sshconfig")

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(s.path))
	}

	return s.withLock(func() error {
		content, err := s.read()
		if err != nil {
			return err
		}

		content, replaced := excise(content, hostAlias)
		content = appendBlock(content, formatBlock(hostAlias, keyPath))

		if err := s.write(content); err != nil {
			return err
		}

		logger.Info().
			Str("host", hostAlias).
			Str("identityFile", keyPath).
			Bool("replaced", replaced).
			Msg("SSH host block written")
		return nil
	})
}

// RemoveHostBlock removes the block for hostAlias and reports whether one
// was found.
func (s *Synchronizer) RemoveHostBlock(hostAlias string) (bool, error) {
	if _, err := s.fs.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", s.path)
	}

	var removed bool
	err := s.withLock(func() error {
		content, err := s.read()
		if err != nil {
			return err
		}

		content, removed = excise(content, hostAlias)
		if !removed {
			return nil
		}
		return s.write(content)
	})
	if err != nil {
		return false, err
	}

	if removed {
		logger := logging.GetLogger("sshconfig")
		logger.Info().Str("host", hostAlias).Msg("SSH host block removed")
	}
	return removed, nil
}

// RemoveHostBlocksWithPrefix removes every block whose single host alias
// starts with prefix, under one lock, and returns the aliases removed.
func (s *Synchronizer) RemoveHostBlocksWithPrefix(prefix string) ([]string, error) {
	if _, err := s.fs.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", s.path)
	}

	var removed []string
	err := s.withLock(func() error {
		content, err := s.read()
		if err != nil {
			return err
		}

		for _, alias := range hostAliases(content, prefix) {
			var ok bool
			if content, ok = excise(content, alias); ok {
				removed = append(removed, alias)
			}
		}
		if len(removed) == 0 {
			return nil
		}
		return s.write(content)
	})
	if err != nil {
		return nil, err
	}

	if len(removed) > 0 {
		logger := logging.GetLogger("sshconfig")
		logger.Info().Strs("hosts", removed).Msg("SSH host blocks removed")
	}
	return removed, nil
}

// FindHostBlock returns the parsed block for hostAlias
func (s *Synchronizer) FindHostBlock(hostAlias string) (*types.HostBlock, bool, error) {
	content, err := s.read()
	if err != nil {
		return nil, false, err
	}
	block, ok := findBlock(content, hostAlias)
	return block, ok, nil
}

// HasHostBlock reports whether a block for hostAlias exists
func (s *Synchronizer) HasHostBlock(hostAlias string) (bool, error) {
	_, ok, err := s.FindHostBlock(hostAlias)
	return ok, err
}

func (s *Synchronizer) read() (string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", s.path)
	}
	return string(data), nil
}

func (s *Synchronizer) write(content string) error {
	if err := s.fs.WriteFile(s.path, []byte(content), 0600); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", s.path)
	}
	if err := s.fs.Chmod(s.path, 0600); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set permissions on %s", s.path)
	}
	return nil
}

// withLock runs fn while holding an exclusive lock on the config file
func (s *Synchronizer) withLock(fn func() error) error {
	unlock, err := s.fs.Lock(s.path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to lock %s", s.path)
	}
	defer func() { _ = unlock() }()

	return fn()
}
