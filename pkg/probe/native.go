package probe

import (
	"context"
	stderrors "errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/types"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const defaultSSHPort = "22"

// NativeProber performs the SSH handshake in-process
type NativeProber struct {
	fs             types.FS
	knownHostsPath string
	port           string
}

var _ types.Prober = (*NativeProber)(nil)

// NewNativeProber returns a prober that verifies host keys against
// knownHostsPath when that file exists
func NewNativeProber(fs types.FS, knownHostsPath string) *NativeProber {
	return &NativeProber{fs: fs, knownHostsPath: knownHostsPath, port: defaultSSHPort}
}

// Probe loads the target's key and authenticates against its host. Success
// means the server accepted the key; no session is opened.
func (p *NativeProber) Probe(ctx context.Context, target types.ProbeTarget) error {
	logger := logging.GetLogger("probe.native")

	signer, err := p.loadSigner(target.KeyPath)
	if err != nil {
		return err
	}

	hostKeyCallback, err := p.hostKeyCallback()
	if err != nil {
		return err
	}

	host := target.HostName
	if host == "" {
		host = types.GitHubHostname
	}
	user := target.User
	if user == "" {
		user = types.GitUser
	}
	addr := net.JoinHostPort(host, p.port)

	config := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         target.Timeout,
	}

	ctx, cancel := context.WithTimeout(ctx, target.Timeout)
	defer cancel()

	dialer := &net.Dialer{Timeout: target.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, errors.ErrProbeTimeout, "cannot reach %s", addr)
	}
	defer conn.Close()

	// The handshake has no timeout of its own once connected
	deadline, _ := ctx.Deadline()
	_ = conn.SetDeadline(deadline)

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		if ctx.Err() != nil || time.Now().After(deadline) {
			return errors.Wrapf(err, errors.ErrProbeTimeout, "handshake with %s timed out", addr)
		}
		return classifyHandshakeError(err, addr)
	}
	client := ssh.NewClient(c, chans, reqs)
	_ = client.Close()

	logger.Debug().Str("alias", target.Alias).Str("addr", addr).Msg("Handshake succeeded")
	return nil
}

func (p *NativeProber) loadSigner(keyPath string) (ssh.Signer, error) {
	if keyPath == "" {
		return nil, errors.New(errors.ErrProbeAuthFailed, "no IdentityFile configured")
	}
	keyPath = expandHome(keyPath)

	data, err := p.fs.ReadFile(keyPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrProbeAuthFailed, "cannot read key %s", keyPath)
	}
	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if stderrors.As(err, &missing) {
			return nil, errors.Newf(errors.ErrProbeAuthFailed, "key %s is passphrase protected", keyPath)
		}
		return nil, errors.Wrapf(err, errors.ErrProbeAuthFailed, "cannot parse key %s", keyPath)
	}
	return signer, nil
}

func (p *NativeProber) hostKeyCallback() (ssh.HostKeyCallback, error) {
	logger := logging.GetLogger("probe.native")

	if p.knownHostsPath != "" {
		data, err := p.fs.ReadFile(p.knownHostsPath)
		switch {
		case err == nil:
			db, err := parseKnownHosts(p.knownHostsPath, data)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", p.knownHostsPath)
			}
			return db.HostKeyCallback(), nil
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", p.knownHostsPath)
		}
	}
	logger.Warn().
		Str("path", p.knownHostsPath).
		Msg("No known_hosts file, host key is not verified")
	return ssh.InsecureIgnoreHostKey(), nil
}

func classifyHandshakeError(err error, addr string) error {
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrapf(err, errors.ErrProbeTimeout, "handshake with %s timed out", addr)
	}
	if stderrors.Is(err, os.ErrDeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(err, errors.ErrProbeTimeout, "handshake with %s timed out", addr)
	}
	var revokedErr *knownhosts.RevokedError
	if stderrors.As(err, &revokedErr) {
		return errors.Wrapf(err, errors.ErrProbeAuthFailed, "host key for %s is revoked", addr)
	}
	var keyErr *knownhosts.KeyError
	if stderrors.As(err, &keyErr) {
		if len(keyErr.Want) > 0 {
			return errors.Wrapf(err, errors.ErrProbeAuthFailed, "host key for %s does not match known_hosts", addr)
		}
		return errors.Wrapf(err, errors.ErrProbeAuthFailed, "host %s is not in known_hosts", addr)
	}
	if strings.Contains(err.Error(), "unable to authenticate") {
		return errors.Wrapf(err, errors.ErrProbeAuthFailed, "%s rejected the key", addr)
	}
	return errors.Wrapf(err, errors.ErrProbeAuthFailed, "handshake with %s failed", addr)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
