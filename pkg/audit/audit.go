package audit

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/identity"
	"github.com/arthur-debert/gim/pkg/keys"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/sshconfig"
	"github.com/arthur-debert/gim/pkg/types"
)

// DefaultProbeTimeout bounds a single connection check
const DefaultProbeTimeout = 5 * time.Second

// Options controls what an audit collects
type Options struct {
	// IncludePublicKeys attaches public key text and fingerprint to reports
	IncludePublicKeys bool
}

// Auditor checks identities against the key files, SSH config and remote
type Auditor struct {
	store   *identity.Store
	keys    *keys.Provisioner
	ssh     *sshconfig.Synchronizer
	prober  types.Prober
	timeout time.Duration
}

// New creates an Auditor. A non-positive timeout means DefaultProbeTimeout.
func New(store *identity.Store, kp *keys.Provisioner, synchronizer *sshconfig.Synchronizer, prober types.Prober, timeout time.Duration) *Auditor {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Auditor{store: store, keys: kp, ssh: synchronizer, prober: prober, timeout: timeout}
}

// Audit checks every stored identity. The only error returned is a failure to
// list the store; per-identity problems live in the report.
func (a *Auditor) Audit(ctx context.Context, opts Options) (*types.AuditReport, error) {
	logger := logging.GetLogger("audit")
	defer logging.LogOperationStart(logger, "audit")()

	aliases, err := a.store.List()
	if err != nil {
		return nil, err
	}

	reports := make([]types.IdentityReport, len(aliases))
	var wg sync.WaitGroup
	for i, alias := range aliases {
		wg.Add(1)
		go func(i int, alias string) {
			defer wg.Done()
			reports[i] = a.auditOne(ctx, alias, opts)
		}(i, alias)
	}
	wg.Wait()

	report := &types.AuditReport{Identities: reports}
	for _, r := range reports {
		if !r.Healthy {
			report.HasIssues = true
			break
		}
	}

	logger.Info().
		Int("identities", len(reports)).
		Int("healthy", report.HealthyCount()).
		Bool("hasIssues", report.HasIssues).
		Msg("Audit finished")

	return report, nil
}

// auditOne runs the three checks for one identity, in order
func (a *Auditor) auditOne(ctx context.Context, alias string, opts Options) types.IdentityReport {
	logger := logging.GetLogger("audit")
	report := types.IdentityReport{Alias: alias}

	id, err := a.store.Read(alias)
	if err != nil {
		logger.Warn().Err(err).Str("alias", alias).Msg("Cannot read identity record")
		report.Err = err
		fallback := types.NewIdentity(alias, "", "")
		id = &fallback
	} else {
		report.Identity = id
	}

	keyCheck := types.CheckResult{Name: types.CheckKey}
	if path, ok := a.keys.FindPrivateKey(alias); ok {
		keyCheck.Passed = true
		report.KeyPath = path
	} else {
		report.KeyPath = a.keys.PrivateKeyPath(alias)
		keyCheck.Detail = fmt.Sprintf("no private key at %s", report.KeyPath)
	}

	configCheck := types.CheckResult{Name: types.CheckConfig}
	block, found, err := a.ssh.FindHostBlock(id.HostAlias)
	switch {
	case err != nil:
		configCheck.Detail = err.Error()
	case !found:
		configCheck.Detail = fmt.Sprintf("no 'Host %s' block in %s", id.HostAlias, a.ssh.Path())
	default:
		configCheck.Passed = true
	}

	target := types.ProbeTarget{
		Alias:     alias,
		HostAlias: id.HostAlias,
		KeyPath:   report.KeyPath,
		Timeout:   a.timeout,
	}
	if block != nil {
		target.HostName = block.HostName
		target.User = block.User
		if block.IdentityFile != "" {
			target.KeyPath = block.IdentityFile
		}
	}

	connCheck := types.CheckResult{Name: types.CheckConnection}
	if err := a.prober.Probe(ctx, target); err != nil {
		connCheck.Detail = probeDetail(err)
		connCheck.Code = string(errors.GetErrorCode(err))
	} else {
		connCheck.Passed = true
	}

	report.Checks = []types.CheckResult{keyCheck, configCheck, connCheck}
	report.Healthy = report.Err == nil && keyCheck.Passed && configCheck.Passed && connCheck.Passed

	if opts.IncludePublicKeys {
		if pair, err := a.keys.Load(alias); err == nil {
			report.PublicKey = pair.PublicKey
			report.Fingerprint = pair.Fingerprint
		}
	}

	logger.Debug().Str("alias", alias).Bool("healthy", report.Healthy).Msg("Identity audited")
	return report
}

// probeDetail returns the human part of a probe error, without the code
// prefix the report already carries separately
func probeDetail(err error) string {
	var gimErr *errors.GimError
	if !stderrors.As(err, &gimErr) {
		return err.Error()
	}
	if gimErr.Wrapped != nil {
		return fmt.Sprintf("%s: %v", gimErr.Message, gimErr.Wrapped)
	}
	return gimErr.Message
}
