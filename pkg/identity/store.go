package identity

import (
	"os"
	"strings"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/paths"
	"github.com/arthur-debert/gim/pkg/types"
)

// Store reads and writes identity records
type Store struct {
	fs    types.FS
	paths paths.Paths
}

// New creates a record store rooted at the paths' identities directory
func New(fs types.FS, p paths.Paths) *Store {
	return &Store{fs: fs, paths: p}
}

// Create validates and persists a new identity. All validation happens before
// anything touches the disk.
func (s *Store) Create(alias, name, email string) (*types.Identity, error) {
	logger := logging.GetLogger("identity.store")

	if err := ValidateAlias(alias); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	exists, err := s.Exists(alias)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Newf(errors.ErrAlreadyExists, "identity '%s' already exists", alias).
			WithDetail("alias", alias)
	}

	id := types.NewIdentity(alias, name, email)
	data, err := encodeRecord(id)
	if err != nil {
		return nil, err
	}

	if err := s.fs.MkdirAll(s.paths.IdentitiesDir(), 0700); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", s.paths.IdentitiesDir())
	}

	path := s.paths.RecordPath(alias)
	if err := s.fs.WriteFile(path, data, 0600); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write record %s", path)
	}

	logger.Info().Str("alias", alias).Str("path", path).Msg("Identity record created")
	return &id, nil
}

// Read loads one identity
func (s *Store) Read(alias string) (*types.Identity, error) {
	if err := ValidateAlias(alias); err != nil {
		return nil, err
	}

	path := s.paths.RecordPath(alias)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "identity '%s' not found", alias).
				WithDetail("alias", alias)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read record %s", path)
	}

	return decodeRecord(alias, data)
}

// Exists reports whether a record file is present for alias
func (s *Store) Exists(alias string) (bool, error) {
	if err := ValidateAlias(alias); err != nil {
		return false, err
	}

	_, err := s.fs.Stat(s.paths.RecordPath(alias))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat record for '%s'", alias)
}

// List returns every stored alias. Order follows the directory listing;
// callers needing a display order sort explicitly.
func (s *Store) List() ([]string, error) {
	entries, err := s.fs.ReadDir(s.paths.IdentitiesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", s.paths.IdentitiesDir())
	}

	aliases := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, paths.RecordExtension) {
			continue
		}
		alias := strings.TrimSuffix(name, paths.RecordExtension)
		if ValidateAlias(alias) != nil {
			continue
		}
		aliases = append(aliases, alias)
	}
	return aliases, nil
}

// Delete removes a record. It is idempotent and reports whether a record
// actually existed.
func (s *Store) Delete(alias string) (bool, error) {
	if err := ValidateAlias(alias); err != nil {
		return false, err
	}

	path := s.paths.RecordPath(alias)
	if err := s.fs.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove record %s", path)
	}

	logger := logging.GetLogger("identity.store")
	logger.Info().Str("alias", alias).Msg("Identity record removed")
	return true, nil
}
