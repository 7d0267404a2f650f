package types_test

import (
	"testing"

	"github.com/arthur-debert/gim/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestNewIdentity_DerivesHostAlias(t *testing.T) {
	id := types.NewIdentity("work", "Jane Doe", "jane@company.com")
	assert.Equal(t, "github-work", id.HostAlias)
	assert.Equal(t, "github-work", types.HostAliasFor("work"))
}

func TestIdentityReport_Check(t *testing.T) {
	r := types.IdentityReport{
		Checks: []types.CheckResult{
			{Name: types.CheckKey, Passed: true},
			{Name: types.CheckConnection, Passed: false, Detail: "timeout"},
		},
	}

	c, ok := r.Check(types.CheckConnection)
	assert.True(t, ok)
	assert.False(t, c.Passed)

	_, ok = r.Check(types.CheckConfig)
	assert.False(t, ok)
}

func TestAuditReport_HealthyCount(t *testing.T) {
	a := types.AuditReport{Identities: []types.IdentityReport{
		{Alias: "a", Healthy: true},
		{Alias: "b"},
		{Alias: "c", Healthy: true},
	}}
	assert.Equal(t, 2, a.HealthyCount())
}

func TestSwitchResult_Updated(t *testing.T) {
	r := types.SwitchResult{Changes: []types.RemoteChange{{Name: "origin"}}, TotalRemotes: 2}
	assert.Equal(t, 1, r.Updated())
}
