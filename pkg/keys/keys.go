package keys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"
	"os"
	"strings"

	"github.com/arthur-debert/gim/pkg/config"
	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/paths"
	"github.com/arthur-debert/gim/pkg/types"
	"golang.org/x/crypto/ssh"
)

// KeyPair describes a generated or discovered keypair on disk
type KeyPair struct {
	Algorithm      string
	PrivateKeyPath string
	PublicKeyPath  string
	PublicKey      string
	Fingerprint    string
}

// Provisioner generates and locates identity keypairs
type Provisioner struct {
	fs        types.FS
	paths     paths.Paths
	algorithm string
	rsaBits   int
}

// New creates a provisioner whose default algorithm is algorithm
func New(fs types.FS, p paths.Paths, algorithm string, rsaBits int) *Provisioner {
	return &Provisioner{
		fs:        fs,
		paths:     p,
		algorithm: algorithm,
		rsaBits:   rsaBits,
	}
}

// Algorithm returns the default key algorithm
func (p *Provisioner) Algorithm() string {
	return p.algorithm
}

// PrivateKeyPath returns the path a key for alias is generated at
func (p *Provisioner) PrivateKeyPath(alias string) string {
	return p.paths.PrivateKeyPath(alias, p.algorithm)
}

// FindPrivateKey locates an existing private key for alias. The default
// algorithm is checked first, then every other supported one, so keys
// survive a change of key.algorithm.
func (p *Provisioner) FindPrivateKey(alias string) (string, bool) {
	for _, algorithm := range p.searchOrder() {
		path := p.paths.PrivateKeyPath(alias, algorithm)
		if _, err := p.fs.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Exists reports whether alias already has a private key on disk
func (p *Provisioner) Exists(alias string) bool {
	_, ok := p.FindPrivateKey(alias)
	return ok
}

// Generate creates a keypair for alias, overwriting whatever is at the target
// paths. algorithm may be empty to use the default. The email becomes the
// public key comment.
func (p *Provisioner) Generate(alias, email, algorithm string) (*KeyPair, error) {
	logger := logging.GetLogger("keys")

	if algorithm == "" {
		algorithm = p.algorithm
	}
	if !config.IsSupportedAlgorithm(algorithm) {
		return nil, errors.Newf(errors.ErrKeyGeneration, "unsupported key algorithm %q", algorithm).
			WithDetail("alias", alias)
	}

	priv, pub, err := generateKey(algorithm, p.rsaBits)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrKeyGeneration, "failed to generate %s key for '%s'", algorithm, alias)
	}

	block, err := ssh.MarshalPrivateKey(priv, email)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrKeyGeneration, "failed to encode private key")
	}
	privateKeyPEM := pem.EncodeToMemory(block)

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrKeyGeneration, "failed to encode public key")
	}
	authorized := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
	if email != "" {
		authorized += " " + email
	}
	authorized += "\n"

	if err := p.fs.MkdirAll(p.paths.SSHDir(), 0700); err != nil {
		return nil, errors.Wrapf(err, errors.ErrKeyGeneration, "failed to create %s", p.paths.SSHDir())
	}

	privPath := p.paths.PrivateKeyPath(alias, algorithm)
	pubPath := p.paths.PublicKeyPath(alias, algorithm)

	if err := p.fs.WriteFile(privPath, privateKeyPEM, 0600); err != nil {
		return nil, errors.Wrapf(err, errors.ErrKeyGeneration, "failed to write private key %s", privPath)
	}
	// WriteFile keeps the mode of a file it overwrites
	if err := p.fs.Chmod(privPath, 0600); err != nil {
		return nil, errors.Wrapf(err, errors.ErrKeyGeneration, "failed to restrict %s", privPath)
	}
	if err := p.fs.WriteFile(pubPath, []byte(authorized), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrKeyGeneration, "failed to write public key %s", pubPath)
	}

	fingerprint := ssh.FingerprintSHA256(sshPub)
	logger.Info().
		Str("alias", alias).
		Str("algorithm", algorithm).
		Str("fingerprint", fingerprint).
		Msg("Key pair generated")

	return &KeyPair{
		Algorithm:      algorithm,
		PrivateKeyPath: privPath,
		PublicKeyPath:  pubPath,
		PublicKey:      authorized,
		Fingerprint:    fingerprint,
	}, nil
}

// Load returns the keypair on disk for alias
func (p *Provisioner) Load(alias string) (*KeyPair, error) {
	for _, algorithm := range p.searchOrder() {
		privPath := p.paths.PrivateKeyPath(alias, algorithm)
		if _, err := p.fs.Stat(privPath); err != nil {
			continue
		}

		pubPath := p.paths.PublicKeyPath(alias, algorithm)
		data, err := p.fs.ReadFile(pubPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read public key %s", pubPath)
		}
		fingerprint, err := Fingerprint(data)
		if err != nil {
			return nil, err
		}
		return &KeyPair{
			Algorithm:      algorithm,
			PrivateKeyPath: privPath,
			PublicKeyPath:  pubPath,
			PublicKey:      string(data),
			Fingerprint:    fingerprint,
		}, nil
	}
	return nil, errors.Newf(errors.ErrNotFound, "no key pair found for '%s'", alias).WithDetail("alias", alias)
}

// Remove deletes every key file belonging to alias, for any algorithm, and
// returns the paths it removed.
func (p *Provisioner) Remove(alias string) ([]string, error) {
	var removed []string
	for _, algorithm := range config.SupportedAlgorithms {
		for _, path := range []string{
			p.paths.PrivateKeyPath(alias, algorithm),
			p.paths.PublicKeyPath(alias, algorithm),
		} {
			if err := p.fs.Remove(path); err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return removed, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", path)
			}
			removed = append(removed, path)
		}
	}
	return removed, nil
}

// Fingerprint returns the SHA256 fingerprint of an authorized_keys line
func Fingerprint(authorizedKey []byte) (string, error) {
	parsed, _, _, _, err := ssh.ParseAuthorizedKey(authorizedKey)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to parse public key")
	}
	return ssh.FingerprintSHA256(parsed), nil
}

func (p *Provisioner) searchOrder() []string {
	order := []string{p.algorithm}
	for _, a := range config.SupportedAlgorithms {
		if a != p.algorithm {
			order = append(order, a)
		}
	}
	return order
}

func generateKey(algorithm string, rsaBits int) (crypto.PrivateKey, crypto.PublicKey, error) {
	switch algorithm {
	case "ed25519":
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return priv, pub, nil
	case "rsa":
		priv, err := rsa.GenerateKey(rand.Reader, rsaBits)
		if err != nil {
			return nil, nil, err
		}
		return priv, &priv.PublicKey, nil
	case "ecdsa":
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, nil, err
		}
		return priv, &priv.PublicKey, nil
	}
	return nil, nil, errors.Newf(errors.ErrKeyGeneration, "unsupported key algorithm %q", algorithm)
}
