package types

// AddResult is the outcome of provisioning a new identity
type AddResult struct {
	Identity       Identity
	PrivateKeyPath string
	PublicKeyPath  string
	PublicKey      string
	Fingerprint    string
	SSHConfigPath  string
	// KeyOverwritten is true when an existing keypair was replaced
	KeyOverwritten bool
}

// RemovedIdentity lists what was deleted for one alias
type RemovedIdentity struct {
	Alias         string
	RecordRemoved bool
	KeysRemoved   []string
	BlockRemoved  bool
}

// Found reports whether anything belonging to the alias existed
func (r RemovedIdentity) Found() bool {
	return r.RecordRemoved || r.BlockRemoved || len(r.KeysRemoved) > 0
}

// RemoveResult is the outcome of removing one or all identities
type RemoveResult struct {
	Removed []RemovedIdentity
	// OrphanBlocks are github-* host blocks with no record, swept by --all
	OrphanBlocks []string
	Cancelled    bool
}
