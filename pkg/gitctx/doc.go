// Package gitctx points git working trees at a stored identity.
//
// Switching sets the repository-local user.name and user.email and rewrites
// every SSH shorthand remote (git@host:path) so that it routes through the
// identity's SSH host alias. Cloning rewrites the source URL the same way
// before handing it to git, then switches the fresh working tree. The
// current-identity lookup runs the other direction: it matches the
// repository's name and email against the stored records.
package gitctx
