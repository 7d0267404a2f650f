package types

// Remote is a configured git remote of a working tree
type Remote struct {
	Name string
	URL  string
}

// RemoteChange records a remote URL rewritten by a switch
type RemoteChange struct {
	Name   string
	OldURL string
	NewURL string
}

// SwitchResult is the outcome of pointing a repository at an identity
type SwitchResult struct {
	Identity     Identity
	RepoDir      string
	Changes      []RemoteChange
	TotalRemotes int
}

// Updated returns how many remotes were rewritten
func (r *SwitchResult) Updated() int {
	return len(r.Changes)
}

// CloneResult is the outcome of cloning through an identity
type CloneResult struct {
	Identity    Identity
	SourceURL   string
	ClonedURL   string
	Destination string
	Switch      *SwitchResult
}

// CurrentResult describes which identity, if any, the repository uses
type CurrentResult struct {
	InRepository bool
	Managed      bool
	Alias        string
	Name         string
	Email        string
	Remotes      []Remote
}
