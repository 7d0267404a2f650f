// Package git drives the git command line on behalf of gim.
//
// Only the handful of operations identity switching needs are exposed, through
// the types.GitClient interface, so that callers can be tested against a
// mock. Every invocation is bound to a context and runs with -C <dir>, never
// relying on the process working directory.
package git
