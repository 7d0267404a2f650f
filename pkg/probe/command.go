package probe

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"time"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
)

// DefaultSSHBinary is the ssh client looked up on PATH
const DefaultSSHBinary = "ssh"

// killGrace is how long the ssh client gets past its own ConnectTimeout
// before the process is killed
const killGrace = 2 * time.Second

// CommandProber authenticates by running the ssh client
type CommandProber struct {
	binary string
	grace  time.Duration
}

var _ types.Prober = (*CommandProber)(nil)

// NewCommandProber returns a prober running binary, or ssh when empty
func NewCommandProber(binary string) *CommandProber {
	if binary == "" {
		binary = DefaultSSHBinary
	}
	return &CommandProber{binary: binary, grace: killGrace}
}

// Args returns the ssh arguments used to probe target
func (p *CommandProber) Args(target types.ProbeTarget) []string {
	return []string{
		"-T",
		"-o", "BatchMode=yes",
		"-o", fmt.Sprintf("ConnectTimeout=%d", timeoutSeconds(target.Timeout)),
		"-o", "StrictHostKeyChecking=accept-new",
		types.GitUser + "@" + target.HostAlias,
	}
}

// Probe runs ssh against the target's host alias
func (p *CommandProber) Probe(ctx context.Context, target types.ProbeTarget) error {
	logger := logging.GetLogger("probe.command")

	ctx, cancel := context.WithTimeout(ctx, target.Timeout+p.grace)
	defer cancel()

	args := p.Args(target)
	logging.LogCommand(logger, p.binary, args)

	cmd := exec.CommandContext(ctx, p.binary, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	logging.LogCommandExit(logger, p.binary, cmd.ProcessState.ExitCode())

	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok && ctx.Err() == nil {
			// ssh could not be started at all
			return errors.Wrapf(err, errors.ErrProbeAuthFailed, "failed to run %s", p.binary)
		}
	}

	result := classifyOutput(out.String(), ctx.Err() == context.DeadlineExceeded)
	logger.Debug().
		Str("alias", target.Alias).
		Bool("ok", result == nil).
		Msg("Probe finished")
	return result
}

// timeoutSeconds rounds up to whole seconds, ssh's ConnectTimeout unit
func timeoutSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
