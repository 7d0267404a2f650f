package probe

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net"
	"strings"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const hashedHostPrefix = "|1|"

// knownHostsEntry is one usable line of a known_hosts file
type knownHostsEntry struct {
	patterns []string
	key      ssh.PublicKey
	revoked  bool
	line     int
}

// knownHostsDB checks host keys against known_hosts content read through
// types.FS rather than from the OS filesystem
type knownHostsDB struct {
	filename string
	entries  []knownHostsEntry
}

func parseKnownHosts(filename string, data []byte) (*knownHostsDB, error) {
	db := &knownHostsDB{filename: filename}

	lineNum := 0
	for len(data) > 0 {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		lineNum++

		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}

		marker, hosts, key, _, _, err := ssh.ParseKnownHosts(trimmed)
		if err != nil {
			return nil, err
		}
		// CA lines only vouch for certificates, which a plain host key is not
		if marker == "cert-authority" {
			continue
		}
		db.entries = append(db.entries, knownHostsEntry{
			patterns: hosts,
			key:      key,
			revoked:  marker == "revoked",
			line:     lineNum,
		})
	}
	return db, nil
}

// HostKeyCallback accepts key when a non-revoked entry for hostname or the
// remote address carries it. Failures are *knownhosts.KeyError or
// *knownhosts.RevokedError, matching the errors knownhosts.New produces.
func (db *knownHostsDB) HostKeyCallback() ssh.HostKeyCallback {
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		addrs := []string{knownhosts.Normalize(hostname)}
		if remote != nil {
			if r := knownhosts.Normalize(remote.String()); r != addrs[0] {
				addrs = append(addrs, r)
			}
		}

		var want []knownhosts.KnownKey
		for _, e := range db.entries {
			if !e.matchesAny(addrs) {
				continue
			}
			same := bytes.Equal(e.key.Marshal(), key.Marshal())
			if e.revoked {
				if same {
					return &knownhosts.RevokedError{Revoked: db.known(e)}
				}
				continue
			}
			if same {
				return nil
			}
			want = append(want, db.known(e))
		}
		return &knownhosts.KeyError{Want: want}
	}
}

func (db *knownHostsDB) known(e knownHostsEntry) knownhosts.KnownKey {
	return knownhosts.KnownKey{Key: e.key, Filename: db.filename, Line: e.line}
}

func (e knownHostsEntry) matchesAny(addrs []string) bool {
	for _, addr := range addrs {
		if e.matches(addr) {
			return true
		}
	}
	return false
}

// matches applies the pattern list to one normalized address. A negated
// pattern that matches vetoes the whole line.
func (e knownHostsEntry) matches(addr string) bool {
	matched := false
	for _, p := range e.patterns {
		negate := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")

		if !matchPattern(p, addr) {
			continue
		}
		if negate {
			return false
		}
		matched = true
	}
	return matched
}

func matchPattern(pattern, addr string) bool {
	if strings.HasPrefix(pattern, hashedHostPrefix) {
		return matchHashed(pattern, addr)
	}
	return wildcardMatch(pattern, addr)
}

// wildcardMatch supports the "*" and "?" wildcards of known_hosts patterns.
// Brackets are literal, as in "[host]:port".
func wildcardMatch(pattern, s string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			for i := len(s); i >= 0; i-- {
				if wildcardMatch(pattern[1:], s[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(s) == 0 {
				return false
			}
		default:
			if len(s) == 0 || pattern[0] != s[0] {
				return false
			}
		}
		pattern, s = pattern[1:], s[1:]
	}
	return len(s) == 0
}

// matchHashed checks addr against a "|1|salt|hash" entry
func matchHashed(pattern, addr string) bool {
	parts := strings.Split(strings.TrimPrefix(pattern, hashedHostPrefix), "|")
	if len(parts) != 2 {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	mac := hmac.New(sha1.New, salt)
	mac.Write([]byte(addr))
	return hmac.Equal(mac.Sum(nil), want)
}
