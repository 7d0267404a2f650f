// Package commands provides high-level command implementations for gim.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the identity components.
//
// Each command is implemented in its own subdirectory:
//   - add/      - provision a new identity
//   - remove/   - delete one or every identity
//   - list/     - audit every identity
//   - current/  - report the repository's identity
//   - switchto/ - point a repository at an identity
//   - clone/    - clone through an identity
//   - common/   - shared service wiring
//
// This file re-exports the command functions so callers need one import.
package commands

import (
	"context"
	"sort"

	"github.com/arthur-debert/gim/pkg/commands/add"
	"github.com/arthur-debert/gim/pkg/commands/clone"
	"github.com/arthur-debert/gim/pkg/commands/common"
	"github.com/arthur-debert/gim/pkg/commands/current"
	"github.com/arthur-debert/gim/pkg/commands/list"
	"github.com/arthur-debert/gim/pkg/commands/remove"
	"github.com/arthur-debert/gim/pkg/commands/switchto"
	"github.com/arthur-debert/gim/pkg/types"
)

// AddOptions configures Add
type AddOptions = add.AddOptions

// Add provisions a new identity.
func Add(opts AddOptions) (*types.AddResult, error) {
	return add.Add(opts)
}

// RemoveOptions configures Remove
type RemoveOptions = remove.RemoveOptions

// Remove deletes one identity, or all of them.
func Remove(opts RemoveOptions) (*types.RemoveResult, error) {
	return remove.Remove(opts)
}

// ListOptions configures List
type ListOptions = list.ListOptions

// List audits every identity.
func List(ctx context.Context, opts ListOptions) (*types.AuditReport, error) {
	return list.List(ctx, opts)
}

// CurrentOptions configures Current
type CurrentOptions = current.CurrentOptions

// Current reports the identity a repository uses.
func Current(ctx context.Context, opts CurrentOptions) (*types.CurrentResult, error) {
	return current.Current(ctx, opts)
}

// SwitchOptions configures Switch
type SwitchOptions = switchto.SwitchOptions

// Switch points a repository at an identity.
func Switch(ctx context.Context, opts SwitchOptions) (*types.SwitchResult, error) {
	return switchto.Switch(ctx, opts)
}

// CloneOptions configures Clone
type CloneOptions = clone.CloneOptions

// Clone clones a repository through an identity.
func Clone(ctx context.Context, opts CloneOptions) (*types.CloneResult, error) {
	return clone.Clone(ctx, opts)
}

// Aliases returns every stored alias, sorted. It reads records only and is
// cheap enough for shell completion.
func Aliases() ([]string, error) {
	svc, err := common.Load(common.Env{})
	if err != nil {
		return nil, err
	}
	aliases, err := svc.Store.List()
	if err != nil {
		return nil, err
	}
	sort.Strings(aliases)
	return aliases, nil
}
