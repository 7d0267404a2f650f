package gim

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Manage multiple Git identities and their SSH keys"
	MsgAddShort        = "Create an identity with its own SSH key"
	MsgSwitchShort     = "Point the current repository at an identity"
	MsgListShort       = "Check the health of every identity"
	MsgCurrentShort    = "Show the identity the current repository uses"
	MsgRemoveShort     = "Delete an identity, or all of them"
	MsgCloneShort      = "Clone a GitHub repository through an identity"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "gim %s\n"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrWorkingDir  = "failed to determine working directory: %w"
	MsgErrRemoveArgs  = "specify an alias or --all, not both"
	MsgErrCloneArgs   = "clone takes <alias> <url> [destination] followed by git clone flags"
	MsgErrIssuesFound = "%d of %d identities have issues"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagForce     = "Replace an existing key without asking"
	MsgFlagAlgorithm = "Key algorithm: ed25519, rsa or ecdsa (default from config)"
	MsgFlagKeys      = "Show each identity's public key and fingerprint"
	MsgFlagAll       = "Remove every identity"
	MsgFlagYes       = "Do not ask for confirmation"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/switch-long.txt
	msgSwitchLongRaw string
	MsgSwitchLong    = strings.TrimSpace(msgSwitchLongRaw)

	//go:embed msgs/clone-long.txt
	msgCloneLongRaw string
	MsgCloneLong    = strings.TrimSpace(msgCloneLongRaw)

	//go:embed msgs/clone-example.txt
	msgCloneExampleRaw string
	MsgCloneExample    = strings.TrimRight(msgCloneExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
