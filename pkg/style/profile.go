package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// ColorEnabled reports whether styled output should be written to f.
// NO_COLOR, a pipe or redirect, and an ASCII-only terminal all disable it.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// Configure turns styling on or off for both lipgloss and pterm
func Configure(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).ColorProfile())
		pterm.EnableStyling()
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
}
