package sshconfig

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/gim/pkg/types"
)

const hostToken = "Host "

func isHostLine(line string) bool {
	return strings.HasPrefix(line, hostToken)
}

func isHeaderFor(line, hostAlias string) bool {
	return strings.TrimRight(line, " \t\r") == hostToken+hostAlias
}

// excise drops every block whose header is exactly "Host <hostAlias>"
func excise(content, hostAlias string) (string, bool) {
	if content == "" {
		return content, false
	}

	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	inBlock := false
	removed := false

	for _, line := range lines {
		if isHostLine(line) {
			inBlock = isHeaderFor(line, hostAlias)
		}
		if inBlock {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return content, false
	}
	return strings.Join(kept, "\n"), true
}

// hostAliases returns the single-pattern host aliases of every Host line
// starting with prefix, in file order
func hostAliases(content, prefix string) []string {
	var aliases []string
	for _, line := range strings.Split(content, "\n") {
		if !isHostLine(line) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, hostToken))
		if len(fields) == 1 && strings.HasPrefix(fields[0], prefix) {
			aliases = append(aliases, fields[0])
		}
	}
	return aliases
}

// formatBlock renders the block for one identity
func formatBlock(hostAlias, keyPath string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", hostToken, hostAlias)
	fmt.Fprintf(&b, "  HostName %s\n", types.GitHubHostname)
	fmt.Fprintf(&b, "  User %s\n", types.GitUser)
	fmt.Fprintf(&b, "  IdentityFile %s\n", quoteValue(keyPath))
	b.WriteString("  IdentitiesOnly yes\n")
	return b.String()
}

// appendBlock appends block to content, separated by one blank line
func appendBlock(content, block string) string {
	switch {
	case content == "":
		return block
	case strings.HasSuffix(content, "\n\n"):
		return content + block
	case strings.HasSuffix(content, "\n"):
		return content + "\n" + block
	default:
		return content + "\n\n" + block
	}
}

// findBlock parses the block with header "Host <hostAlias>", if present
func findBlock(content, hostAlias string) (*types.HostBlock, bool) {
	var block *types.HostBlock
	inBlock := false

	for _, line := range strings.Split(content, "\n") {
		if isHostLine(line) {
			if block != nil {
				break
			}
			inBlock = isHeaderFor(line, hostAlias)
			if inBlock {
				block = &types.HostBlock{HostAlias: hostAlias}
			}
			continue
		}
		if !inBlock {
			continue
		}

		key, value, ok := splitOption(line)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "hostname":
			block.HostName = value
		case "user":
			block.User = value
		case "identityfile":
			block.IdentityFile = value
		case "identitiesonly":
			block.IdentitiesOnly = strings.EqualFold(value, "yes")
		}
	}

	return block, block != nil
}

// splitOption splits "  Key value" or "Key=value" into its parts
func splitOption(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	idx := strings.IndexAny(line, " \t=")
	if idx < 0 {
		return "", "", false
	}
	key := line[:idx]
	value := strings.TrimLeft(line[idx:], " \t=")
	return key, unquoteValue(strings.TrimSpace(value)), true
}

func quoteValue(v string) string {
	if strings.ContainsAny(v, " \t") {
		return `"` + v + `"`
	}
	return v
}

func unquoteValue(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
