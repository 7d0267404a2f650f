package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/gim/pkg/style"
	"github.com/arthur-debert/gim/pkg/types"
)

//go:embed templates/*.md
var templateFS embed.FS

var addInstructions = template.Must(template.ParseFS(templateFS, "templates/add_instructions.md"))

// wordWrap is the width markdown is wrapped at
const wordWrap = 80

// Renderer writes command results to an output stream
type Renderer struct {
	w io.Writer
	// rich enables glamour rendering of markdown blocks
	rich bool
}

// NewRenderer creates a renderer. rich should be true only when w is a
// terminal that accepts styled output.
func NewRenderer(w io.Writer, rich bool) *Renderer {
	return &Renderer{w: w, rich: rich}
}

func (r *Renderer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Renderer) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

func identityLine(id types.Identity) string {
	line := style.Render("Alias", id.Alias)
	if id.Name != "" || id.Email != "" {
		line += fmt.Sprintf(" %s <%s>", id.Name, style.Render("Email", id.Email))
	}
	return line
}

// RenderAdd prints the new identity, its public key and what to do next
func (r *Renderer) RenderAdd(result *types.AddResult) error {
	r.println(style.Badge(style.StatusOK, "Created identity ") + identityLine(result.Identity))
	if result.KeyOverwritten {
		r.println(style.Badge(style.StatusWarning, "Replaced the existing key at ") + style.Render("FilePath", result.PrivateKeyPath))
	}
	r.printf("  Private key: %s\n", style.Render("FilePath", result.PrivateKeyPath))
	r.printf("  SSH config:  %s (Host %s)\n", style.Render("FilePath", result.SSHConfigPath), style.Render("HostAlias", result.Identity.HostAlias))
	if result.Fingerprint != "" {
		r.printf("  Fingerprint: %s\n", style.Render("Muted", result.Fingerprint))
	}
	r.println("")
	r.println(style.Render("Header", "Public key"))
	r.println(strings.TrimSpace(result.PublicKey))
	r.println("")

	return r.renderMarkdown(addInstructions, result)
}

func (r *Renderer) renderMarkdown(tmpl *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}

	if r.rich {
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wordWrap))
		if err == nil {
			if rendered, err := renderer.Render(buf.String()); err == nil {
				_, err = io.WriteString(r.w, rendered)
				return err
			}
		}
	}

	_, err := r.w.Write(buf.Bytes())
	return err
}

// RenderSwitch prints the identity now in use and the remotes that changed
func (r *Renderer) RenderSwitch(result *types.SwitchResult) error {
	r.println(style.Badge(style.StatusOK, "Switched to ") + identityLine(result.Identity))
	r.printf("Updated %d of %d remotes\n", result.Updated(), result.TotalRemotes)
	for _, change := range result.Changes {
		r.printf("  %s: %s -> %s\n", change.Name, style.Render("Muted", change.OldURL), change.NewURL)
	}
	return nil
}

// RenderClone prints where the repository went and which identity it uses
func (r *Renderer) RenderClone(result *types.CloneResult) error {
	r.println(style.Badge(style.StatusOK, "Cloned ") + result.SourceURL)
	r.printf("  into %s via %s\n", style.Render("FilePath", result.Destination), style.Render("HostAlias", result.ClonedURL))
	if result.Switch != nil {
		return r.RenderSwitch(result.Switch)
	}
	return nil
}

// RenderCurrent prints the repository's identity and remotes
func (r *Renderer) RenderCurrent(result *types.CurrentResult) error {
	if !result.InRepository {
		r.println(style.Render("Muted", "Not inside a git repository"))
		return nil
	}

	if result.Managed {
		r.printf("Current identity: %s\n", identityLine(types.NewIdentity(result.Alias, result.Name, result.Email)))
	} else {
		r.printf("Current identity: %s", style.Render("Warning", "unmanaged"))
		if result.Email != "" {
			r.printf(" (%s <%s>)", result.Name, result.Email)
		}
		r.println("")
	}

	if len(result.Remotes) == 0 {
		r.println(style.Render("Muted", "No remotes"))
		return nil
	}
	r.println("Remotes:")
	for _, remote := range result.Remotes {
		r.printf("  %s\t%s\n", remote.Name, remote.URL)
	}
	return nil
}

// RenderList prints the audit, one identity per block
func (r *Renderer) RenderList(report *types.AuditReport, showKeys bool) error {
	if len(report.Identities) == 0 {
		r.println("No identities configured. Run 'gim add <alias> <name> <email>' to create one.")
		return nil
	}

	for _, id := range report.Identities {
		header := style.Badge(style.StatusFor(id.Healthy), "") + style.Render("Alias", id.Alias)
		if id.Identity != nil && id.Identity.Email != "" {
			header += fmt.Sprintf(" %s <%s>", id.Identity.Name, style.Render("Email", id.Identity.Email))
		}
		r.println(header)

		if id.Err != nil {
			r.println("    " + style.Render("Error", id.Err.Error()))
		}
		for _, check := range id.Checks {
			line := "    " + style.Badge(style.StatusFor(check.Passed), string(check.Name))
			if check.Detail != "" {
				line += " " + style.Render("Muted", check.Detail)
			}
			r.println(line)
		}
		if showKeys && id.PublicKey != "" {
			r.println("    " + style.Render("Muted", id.Fingerprint))
			r.println("    " + strings.TrimSpace(id.PublicKey))
		}
	}

	r.println("")
	summary := fmt.Sprintf("%d of %d identities healthy", report.HealthyCount(), len(report.Identities))
	if report.HasIssues {
		r.println(style.Render("Warning", summary))
	} else {
		r.println(style.Render("Success", summary))
	}
	return nil
}

// RenderRemove prints what was deleted
func (r *Renderer) RenderRemove(result *types.RemoveResult) error {
	if result.Cancelled {
		r.println("Nothing removed")
		return nil
	}
	if len(result.Removed) == 0 && len(result.OrphanBlocks) == 0 {
		r.println("No identities to remove")
		return nil
	}

	for _, removed := range result.Removed {
		r.println(style.Badge(style.StatusOK, "Removed ") + style.Render("Alias", removed.Alias))
		if removed.RecordRemoved {
			r.println("    record")
		}
		for _, key := range removed.KeysRemoved {
			r.printf("    key %s\n", style.Render("FilePath", key))
		}
		if removed.BlockRemoved {
			r.printf("    Host %s\n", types.HostAliasFor(removed.Alias))
		}
	}
	for _, host := range result.OrphanBlocks {
		r.println(style.Badge(style.StatusWarning, "Removed orphan block Host ") + host)
	}
	return nil
}
