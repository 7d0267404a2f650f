// Package paths provides centralized path handling for gim.
//
// Identity records and the user configuration live under the XDG config
// home; keys and the SSH client configuration live in the SSH directory
// (~/.ssh unless overridden). Both roots can be redirected through
// environment variables, which is how tests isolate themselves.
package paths
