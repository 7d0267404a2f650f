package probe

import (
	"strings"

	"github.com/arthur-debert/gim/pkg/config"
	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/types"
)

// successMarker is printed by GitHub when authentication succeeded. The
// session itself is refused (no shell access), so the exit code is useless.
const successMarker = "successfully authenticated"

// unreachableMarkers identify output where the host was never reached
var unreachableMarkers = []string{
	"timed out",
	"could not resolve hostname",
	"network is unreachable",
	"no route to host",
	"connection refused",
	"connection closed by remote host",
}

// New returns the prober selected by cfg.Mode
func New(cfg config.ProbeConfig, fs types.FS, knownHostsPath string) (types.Prober, error) {
	switch cfg.Mode {
	case config.ProbeModeCommand, "":
		return NewCommandProber(cfg.SSHBinary), nil
	case config.ProbeModeNative:
		return NewNativeProber(fs, knownHostsPath), nil
	}
	return nil, errors.Newf(errors.ErrConfigValid, "unknown probe mode %q", cfg.Mode)
}

// classifyOutput maps ssh client output to a probe result. timedOut is true
// when the context deadline expired before the client exited.
func classifyOutput(output string, timedOut bool) error {
	lower := strings.ToLower(output)
	if strings.Contains(lower, successMarker) {
		return nil
	}

	detail := lastLine(output)
	if timedOut {
		return errors.New(errors.ErrProbeTimeout, "connection timed out")
	}
	for _, marker := range unreachableMarkers {
		if strings.Contains(lower, marker) {
			return errors.New(errors.ErrProbeTimeout, detail)
		}
	}
	if detail == "" {
		detail = "authentication failed"
	}
	return errors.New(errors.ErrProbeAuthFailed, detail)
}

// lastLine returns the last non-blank line of output, which is where ssh
// puts the reason for a failure
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
