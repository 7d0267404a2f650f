// Package types holds the shared domain types of gim: identities, SSH host
// blocks, repository remotes, audit reports and the filesystem abstraction.
package types
