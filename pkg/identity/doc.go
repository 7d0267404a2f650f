// Package identity implements the identity record store.
//
// Each identity is persisted as one small TOML file named after its alias in
// the identities directory. The store keeps no in-memory state: every call
// goes to disk, so separate gim invocations always agree, but nothing
// isolates a call from a concurrent external edit.
package identity
