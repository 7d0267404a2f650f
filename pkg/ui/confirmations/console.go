// Package confirmations provides UI implementations for confirmation dialogs.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/gim/pkg/types"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// maxListedItems is how many affected items are printed before truncating
const maxListedItems = 3

// ConsoleDialog implements ConfirmationDialog for console interaction
type ConsoleDialog struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

var _ types.ConfirmationDialog = (*ConsoleDialog)(nil)

// NewConsoleDialog creates a dialog on stdin/stdout. On a terminal it uses
// pterm's interactive prompt, otherwise it reads one line.
func NewConsoleDialog() *ConsoleDialog {
	return &ConsoleDialog{
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewLineDialog creates a non-interactive dialog reading answers from in
func NewLineDialog(in io.Reader, out io.Writer) *ConsoleDialog {
	return &ConsoleDialog{in: in, out: out}
}

// Confirm shows the request and collects a yes/no answer
func (d *ConsoleDialog) Confirm(req types.ConfirmationRequest) (bool, error) {
	if req.Title != "" {
		_, _ = fmt.Fprintln(d.out, req.Title)
	}
	if len(req.Items) > 0 {
		if len(req.Items) <= maxListedItems {
			_, _ = fmt.Fprintf(d.out, "└── %s\n", strings.Join(req.Items, ", "))
		} else {
			_, _ = fmt.Fprintf(d.out, "└── %s and %d more\n",
				strings.Join(req.Items[:maxListedItems], ", "), len(req.Items)-maxListedItems)
		}
	}

	prompt := req.Description
	if prompt == "" {
		prompt = "Continue?"
	}

	if d.interactive {
		return pterm.DefaultInteractiveConfirm.
			WithDefaultValue(req.Default).
			Show(prompt)
	}

	defaultMarker := "[y/N]"
	if req.Default {
		defaultMarker = "[Y/n]"
	}
	_, _ = fmt.Fprintf(d.out, "%s %s: ", prompt, defaultMarker)

	response, err := bufio.NewReader(d.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	response = strings.ToLower(strings.TrimSpace(response))
	if response == "" {
		return req.Default, nil
	}
	return response == "y" || response == "yes", nil
}
