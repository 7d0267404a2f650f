package types

import (
	"context"
	"time"
)

// CheckName identifies one of the per-identity health checks
type CheckName string

const (
	CheckKey        CheckName = "Key"
	CheckConfig     CheckName = "Config"
	CheckConnection CheckName = "Connection"
)

// CheckResult is the outcome of a single check
type CheckResult struct {
	Name   CheckName
	Passed bool
	// Detail explains a failure, empty when Passed
	Detail string
	// Code is the error code behind a failed connection check
	Code string
}

// IdentityReport is the audit outcome for one identity
type IdentityReport struct {
	Alias       string
	Identity    *Identity
	KeyPath     string
	Checks      []CheckResult
	Healthy     bool
	PublicKey   string
	Fingerprint string
	// Err is set when the record itself could not be read
	Err error
}

// Check returns the named check result, if it ran
func (r IdentityReport) Check(name CheckName) (CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}

// AuditReport aggregates every identity's report in enumeration order
type AuditReport struct {
	Identities []IdentityReport
	HasIssues  bool
}

// HealthyCount returns how many identities passed every check
func (a AuditReport) HealthyCount() int {
	n := 0
	for _, r := range a.Identities {
		if r.Healthy {
			n++
		}
	}
	return n
}

// ProbeTarget is everything a prober needs to attempt one authentication
type ProbeTarget struct {
	Alias     string
	HostAlias string
	// HostName, User and KeyPath come from the identity's SSH config block
	// and are only used by in-process probing
	HostName string
	User     string
	KeyPath  string
	Timeout  time.Duration
}

// Prober attempts a non-interactive SSH authentication. A nil error means the
// remote accepted the key.
type Prober interface {
	Probe(ctx context.Context, target ProbeTarget) error
}
