package list

import (
	"context"
	"sort"

	"github.com/arthur-debert/gim/pkg/audit"
	"github.com/arthur-debert/gim/pkg/commands/common"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// ListOptions defines the options for the list command
type ListOptions struct {
	common.Env

	// ShowKeys includes each identity's public key and fingerprint
	ShowKeys bool
}

// List audits every stored identity. Reports are sorted by alias for display;
// the audit itself preserves store order.
func List(ctx context.Context, opts ListOptions) (*types.AuditReport, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "List").Bool("keys", opts.ShowKeys).Msg("Executing command")

	svc, err := common.Load(opts.Env)
	if err != nil {
		return nil, err
	}

	auditor := audit.New(svc.Store, svc.Keys, svc.SSH, svc.Prober, svc.Config.Probe.Timeout)
	report, err := auditor.Audit(ctx, audit.Options{IncludePublicKeys: opts.ShowKeys})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(report.Identities, func(i, j int) bool {
		return report.Identities[i].Alias < report.Identities[j].Alias
	})

	log.Info().
		Str("command", "List").
		Int("identities", len(report.Identities)).
		Bool("hasIssues", report.HasIssues).
		Msg("Command finished")
	return report, nil
}
