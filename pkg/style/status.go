package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status is the visual state of an identity or one of its checks
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusWarning Status = "warning"
	StatusNone    Status = "none"
)

// StatusStyle returns the pterm style used for a status badge
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusOK:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusWarning:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Indicator is the one-character marker for a status
func Indicator(status Status) string {
	switch status {
	case StatusOK:
		return "✓"
	case StatusFailed:
		return "✗"
	case StatusWarning:
		return "!"
	default:
		return "•"
	}
}

// StatusFor maps a pass/fail flag to a status
func StatusFor(passed bool) Status {
	if passed {
		return StatusOK
	}
	return StatusFailed
}

// Badge renders "<indicator> label" in the status color
func Badge(status Status, label string) string {
	return StatusStyle(status).Sprint(fmt.Sprintf("%s %s", Indicator(status), label))
}
