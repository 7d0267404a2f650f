package types

// HostBlock is one "Host <alias>" stanza of the SSH client configuration
type HostBlock struct {
	HostAlias      string
	HostName       string
	User           string
	IdentityFile   string
	IdentitiesOnly bool
}
