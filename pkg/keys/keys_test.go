// pkg/keys/keys_test.go
// TEST TYPE: Provisioner Tests
// DEPENDENCIES: Real filesystem in a temp directory
// PURPOSE: Test key generation, lookup and removal

package keys_test

import (
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/keys"
	"github.com/arthur-debert/gim/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func TestGenerate_Algorithms(t *testing.T) {
	tests := []struct {
		algorithm string
		keyType   string
	}{
		{"ed25519", ssh.KeyAlgoED25519},
		{"ecdsa", ssh.KeyAlgoECDSA256},
		{"rsa", ssh.KeyAlgoRSA},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t)
			p := keys.New(env.FS, env.Paths, "ed25519", 2048)

			kp, err := p.Generate("work", "jane@company.com", tt.algorithm)
			require.NoError(t, err)

			assert.Equal(t, env.Paths.PrivateKeyPath("work", tt.algorithm), kp.PrivateKeyPath)
			assert.Equal(t, kp.PrivateKeyPath+".pub", kp.PublicKeyPath)
			assert.True(t, strings.HasSuffix(strings.TrimSpace(kp.PublicKey), "jane@company.com"))
			assert.True(t, strings.HasPrefix(kp.Fingerprint, "SHA256:"))

			privData, err := os.ReadFile(kp.PrivateKeyPath)
			require.NoError(t, err)
			signer, err := ssh.ParsePrivateKey(privData)
			require.NoError(t, err, "private key must be unencrypted OpenSSH")
			assert.Equal(t, tt.keyType, signer.PublicKey().Type())

			pubData, err := os.ReadFile(kp.PublicKeyPath)
			require.NoError(t, err)
			pub, comment, _, _, err := ssh.ParseAuthorizedKey(pubData)
			require.NoError(t, err)
			assert.Equal(t, "jane@company.com", comment)
			assert.Equal(t, ssh.FingerprintSHA256(signer.PublicKey()), ssh.FingerprintSHA256(pub))
		})
	}
}

func TestGenerate_Permissions(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	p := keys.New(env.FS, env.Paths, "ed25519", 4096)

	kp, err := p.Generate("work", "jane@company.com", "")
	require.NoError(t, err)
	assert.Equal(t, "ed25519", kp.Algorithm)

	info, err := os.Stat(kp.PrivateKeyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	info, err = os.Stat(env.SSHDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestGenerate_OverwriteRestrictsMode(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	p := keys.New(env.FS, env.Paths, "ed25519", 4096)

	path := env.WriteFile("ssh/id_ed25519_work", "old", 0644)

	_, err := p.Generate("work", "jane@company.com", "")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.NotEqual(t, "old", env.ReadFile(path))
}

func TestGenerate_Failures(t *testing.T) {
	t.Run("unsupported algorithm", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		p := keys.New(env.FS, env.Paths, "ed25519", 4096)

		_, err := p.Generate("work", "jane@company.com", "dsa")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrKeyGeneration))
	})

	t.Run("ssh dir is a file", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		env.WriteFile("ssh", "not a directory", 0600)
		p := keys.New(env.FS, env.Paths, "ed25519", 4096)

		_, err := p.Generate("work", "jane@company.com", "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrKeyGeneration))
	})
}

func TestExistsAndFind(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	p := keys.New(env.FS, env.Paths, "ed25519", 2048)

	assert.False(t, p.Exists("work"))

	// A key made under another algorithm is still found
	_, err := p.Generate("work", "jane@company.com", "ecdsa")
	require.NoError(t, err)

	path, ok := p.FindPrivateKey("work")
	assert.True(t, ok)
	assert.Equal(t, env.Paths.PrivateKeyPath("work", "ecdsa"), path)
	assert.True(t, p.Exists("work"))
}

func TestLoad(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	p := keys.New(env.FS, env.Paths, "ed25519", 4096)

	_, err := p.Load("work")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	generated, err := p.Generate("work", "jane@company.com", "")
	require.NoError(t, err)

	loaded, err := p.Load("work")
	require.NoError(t, err)
	assert.Equal(t, generated.PublicKey, loaded.PublicKey)
	assert.Equal(t, generated.Fingerprint, loaded.Fingerprint)
}

func TestRemove(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	p := keys.New(env.FS, env.Paths, "ed25519", 4096)

	kp, err := p.Generate("work", "jane@company.com", "")
	require.NoError(t, err)
	other, err := p.Generate("personal", "me@home.org", "")
	require.NoError(t, err)

	removed, err := p.Remove("work")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{kp.PrivateKeyPath, kp.PublicKeyPath}, removed)
	assert.False(t, env.FileExists(kp.PrivateKeyPath))
	assert.True(t, env.FileExists(other.PrivateKeyPath), "other identities' keys are untouched")

	removed, err = p.Remove("work")
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestFingerprint_Invalid(t *testing.T) {
	_, err := keys.Fingerprint([]byte("not a key"))
	assert.Error(t, err)
}
