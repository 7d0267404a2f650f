// Package testutil provides shared fixtures for gim tests: an isolated
// on-disk environment and testify mocks for the git client and SSH prober.
package testutil
