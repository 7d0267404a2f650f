package types

// Fixed SSH routing parameters. Every identity targets the same real host;
// only the synthetic host alias differs.
const (
	HostAliasPrefix = "github-"
	GitHubHostname  = "github.com"
	GitUser         = "git"
)

// Identity is one Git author/SSH-key persona
type Identity struct {
	Alias     string
	Name      string
	Email     string
	HostAlias string
}

// HostAliasFor derives the SSH host alias for an identity alias
func HostAliasFor(alias string) string {
	return HostAliasPrefix + alias
}

// NewIdentity builds an Identity with its derived host alias
func NewIdentity(alias, name, email string) Identity {
	return Identity{
		Alias:     alias,
		Name:      name,
		Email:     email,
		HostAlias: HostAliasFor(alias),
	}
}
