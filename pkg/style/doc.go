// Package style holds gim's terminal styling.
//
// Named lipgloss styles are declared in the embedded styles.yaml, each one
// built from adaptive light/dark colors, and looked up with GetStyle. Status
// badges for health checks use pterm. Whether any of it is emitted is decided
// once per process by Configure, from the output stream and the terminal's
// color profile.
package style
