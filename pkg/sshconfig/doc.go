// Package sshconfig keeps one "Host github-<alias>" block per identity in the
// user's SSH client configuration.
//
// Block boundaries are purely lexical: a block starts at a line beginning
// with the literal token "Host " and runs until the next such line or end of
// file. Replacing a block removes it and appends a fresh one at the end of
// the file, so block order reflects the order of the last update.
//
// Every read-modify-write cycle holds an advisory exclusive lock on the
// config file. Editors and tools that do not take the lock can still race
// with gim.
package sshconfig
