// pkg/audit/audit_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Temp store/key/ssh dirs, fake prober
// PURPOSE: Test concurrent auditing, aggregation and output ordering

package audit_test

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arthur-debert/gim/pkg/audit"
	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/identity"
	"github.com/arthur-debert/gim/pkg/keys"
	"github.com/arthur-debert/gim/pkg/sshconfig"
	"github.com/arthur-debert/gim/pkg/testutil"
	"github.com/arthur-debert/gim/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	env   *testutil.TestEnvironment
	store *identity.Store
	keys  *keys.Provisioner
	ssh   *sshconfig.Synchronizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	return &fixture{
		env:   env,
		store: identity.New(env.FS, env.Paths),
		keys:  keys.New(env.FS, env.Paths, "ed25519", 0),
		ssh:   sshconfig.New(env.FS, env.Paths.SSHConfigPath()),
	}
}

// add provisions an identity, optionally skipping the key or the block
func (f *fixture) add(t *testing.T, alias string, withKey, withBlock bool) {
	t.Helper()
	id, err := f.store.Create(alias, "Name "+alias, alias+"@example.com")
	require.NoError(t, err)
	if withKey {
		_, err := f.keys.Generate(alias, id.Email, "")
		require.NoError(t, err)
	}
	if withBlock {
		require.NoError(t, f.ssh.UpsertHostBlock(id.HostAlias, f.keys.PrivateKeyPath(alias)))
	}
}

func (f *fixture) auditor(prober types.Prober) *audit.Auditor {
	return audit.New(f.store, f.keys, f.ssh, prober, time.Second)
}

func acceptAll() types.Prober {
	return testutil.ProberFunc(func(context.Context, types.ProbeTarget) error { return nil })
}

func TestAudit_MixedHealth(t *testing.T) {
	f := newFixture(t)
	f.add(t, "alpha", false, true)   // missing key
	f.add(t, "bravo", true, true)    // healthy
	f.add(t, "charlie", true, false) // missing block

	report, err := f.auditor(acceptAll()).Audit(context.Background(), audit.Options{})
	require.NoError(t, err)

	require.Len(t, report.Identities, 3)
	assert.Equal(t, 1, report.HealthyCount())
	assert.True(t, report.HasIssues)

	byAlias := map[string]types.IdentityReport{}
	for _, r := range report.Identities {
		byAlias[r.Alias] = r
	}

	key, _ := byAlias["alpha"].Check(types.CheckKey)
	assert.False(t, key.Passed)
	assert.NotEmpty(t, key.Detail)

	assert.True(t, byAlias["bravo"].Healthy)

	cfg, _ := byAlias["charlie"].Check(types.CheckConfig)
	assert.False(t, cfg.Passed)
	conn, _ := byAlias["charlie"].Check(types.CheckConnection)
	assert.True(t, conn.Passed, "a failed check does not stop the later ones")
}

func TestAudit_AllHealthy(t *testing.T) {
	f := newFixture(t)
	f.add(t, "alpha", true, true)
	f.add(t, "bravo", true, true)

	report, err := f.auditor(acceptAll()).Audit(context.Background(), audit.Options{})
	require.NoError(t, err)
	assert.False(t, report.HasIssues)
	assert.Equal(t, 2, report.HealthyCount())
}

func TestAudit_Empty(t *testing.T) {
	f := newFixture(t)

	report, err := f.auditor(acceptAll()).Audit(context.Background(), audit.Options{})
	require.NoError(t, err)
	assert.Empty(t, report.Identities)
	assert.False(t, report.HasIssues)
}

func TestAudit_OrderMatchesEnumerationNotCompletion(t *testing.T) {
	f := newFixture(t)
	aliases := []string{"a1", "a2", "a3", "a4", "a5"}
	for _, a := range aliases {
		f.add(t, a, true, true)
	}
	listed, err := f.store.List()
	require.NoError(t, err)

	// Earlier identities answer later, so completion order is reversed
	delay := map[string]time.Duration{}
	for i, a := range listed {
		delay[a] = time.Duration(len(listed)-i) * 40 * time.Millisecond
	}
	var inFlight, maxInFlight int32
	prober := testutil.ProberFunc(func(_ context.Context, target types.ProbeTarget) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(delay[target.Alias])
		atomic.AddInt32(&inFlight, -1)
		return nil
	})

	report, err := f.auditor(prober).Audit(context.Background(), audit.Options{})
	require.NoError(t, err)

	got := make([]string, len(report.Identities))
	for i, r := range report.Identities {
		got[i] = r.Alias
	}
	assert.Equal(t, listed, got)
	assert.Greater(t, atomic.LoadInt32(&maxInFlight), int32(1), "identities are probed concurrently")
}

func TestAudit_ProbeFailuresFoldIntoConnectionCheck(t *testing.T) {
	f := newFixture(t)
	f.add(t, "slow", true, true)
	f.add(t, "denied", true, true)

	prober := &testutil.MockProber{}
	prober.On("Probe", mock.Anything, mock.MatchedBy(func(tg types.ProbeTarget) bool { return tg.Alias == "slow" })).
		Return(errors.New(errors.ErrProbeTimeout, "connection timed out"))
	prober.On("Probe", mock.Anything, mock.MatchedBy(func(tg types.ProbeTarget) bool { return tg.Alias == "denied" })).
		Return(errors.New(errors.ErrProbeAuthFailed, "Permission denied (publickey)."))

	report, err := f.auditor(prober).Audit(context.Background(), audit.Options{})
	require.NoError(t, err)
	prober.AssertExpectations(t)

	for _, r := range report.Identities {
		conn, ok := r.Check(types.CheckConnection)
		require.True(t, ok)
		assert.False(t, conn.Passed)
		assert.False(t, r.Healthy)
		switch r.Alias {
		case "slow":
			assert.Equal(t, string(errors.ErrProbeTimeout), conn.Code)
		case "denied":
			assert.Equal(t, string(errors.ErrProbeAuthFailed), conn.Code)
			assert.Equal(t, "Permission denied (publickey).", conn.Detail)
		}
	}
}

func TestAudit_ProbeTargetComesFromBlock(t *testing.T) {
	f := newFixture(t)
	f.add(t, "work", true, true)

	prober := &testutil.MockProber{}
	prober.On("Probe", mock.Anything, types.ProbeTarget{
		Alias:     "work",
		HostAlias: "github-work",
		HostName:  "github.com",
		User:      "git",
		KeyPath:   f.keys.PrivateKeyPath("work"),
		Timeout:   time.Second,
	}).Return(nil)

	_, err := f.auditor(prober).Audit(context.Background(), audit.Options{})
	require.NoError(t, err)
	prober.AssertExpectations(t)
}

func TestAudit_IncludePublicKeys(t *testing.T) {
	f := newFixture(t)
	f.add(t, "work", true, true)
	f.add(t, "nokey", false, true)

	report, err := f.auditor(acceptAll()).Audit(context.Background(), audit.Options{IncludePublicKeys: true})
	require.NoError(t, err)

	for _, r := range report.Identities {
		switch r.Alias {
		case "work":
			assert.Contains(t, r.PublicKey, "ssh-ed25519 ")
			assert.Contains(t, r.Fingerprint, "SHA256:")
		case "nokey":
			assert.Empty(t, r.PublicKey)
		}
	}
}

func TestAudit_UnreadableRecordIsReportedNotFatal(t *testing.T) {
	f := newFixture(t)
	f.add(t, "good", true, true)
	require.NoError(t, os.WriteFile(f.env.Paths.RecordPath("broken"), []byte("not = [valid"), 0600))

	report, err := f.auditor(acceptAll()).Audit(context.Background(), audit.Options{})
	require.NoError(t, err)
	require.Len(t, report.Identities, 2)
	assert.True(t, report.HasIssues)

	for _, r := range report.Identities {
		if r.Alias == "broken" {
			assert.Error(t, r.Err)
			assert.False(t, r.Healthy)
			assert.Len(t, r.Checks, 3)
		}
	}
}
