package identity

import (
	"bytes"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// record is the on-disk shape of an identity. The alias is the file name.
type record struct {
	Name      string `toml:"name"`
	Email     string `toml:"email"`
	HostAlias string `toml:"host_alias"`
}

func encodeRecord(id types.Identity) ([]byte, error) {
	data, err := toml.Marshal(record{
		Name:      id.Name,
		Email:     id.Email,
		HostAlias: id.HostAlias,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode identity record")
	}
	return data, nil
}

// decodeRecord parses a record strictly: unknown keys, missing keys and a
// host alias that does not match the alias are all errors.
func decodeRecord(alias string, data []byte) (*types.Identity, error) {
	var rec record
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRecordInvalid, "malformed record for identity '%s'", alias).
			WithDetail("alias", alias)
	}

	var missing []string
	if rec.Name == "" {
		missing = append(missing, "name")
	}
	if rec.Email == "" {
		missing = append(missing, "email")
	}
	if rec.HostAlias == "" {
		missing = append(missing, "host_alias")
	}
	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrRecordInvalid, "record for identity '%s' is missing %v", alias, missing).
			WithDetail("alias", alias)
	}

	if want := types.HostAliasFor(alias); rec.HostAlias != want {
		return nil, errors.Newf(errors.ErrRecordInvalid,
			"record for identity '%s' has host_alias %q, expected %q", alias, rec.HostAlias, want).
			WithDetail("alias", alias)
	}

	id := types.NewIdentity(alias, rec.Name, rec.Email)
	return &id, nil
}
