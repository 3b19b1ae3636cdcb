package runner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSHConfig describes how to reach the storage box.
type SSHConfig struct {
	Host                  string
	Port                  int
	User                  string
	IdentityFile          string
	KnownHostsFile        string
	InsecureIgnoreHostKey bool
	DialTimeout           time.Duration
}

// SSHRunner executes commands on a remote host, one session per command,
// over a single authenticated connection.
type SSHRunner struct {
	client *ssh.Client
	addr   string
	mu     sync.Mutex
}

// DialSSH authenticates with the private key in cfg.IdentityFile and checks
// the host key against cfg.KnownHostsFile unless explicitly told not to.
func DialSSH(ctx context.Context, cfg SSHConfig) (*SSHRunner, error) {
	clientCfg, err := clientConfig(cfg)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}

	return &SSHRunner{client: ssh.NewClient(c, chans, reqs), addr: addr}, nil
}

func clientConfig(cfg SSHConfig) (*ssh.ClientConfig, error) {
	username := cfg.User
	if username == "" {
		u, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("resolve local user: %w", err)
		}
		username = u.Username
	}

	keyData, err := os.ReadFile(cfg.IdentityFile)
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("identity file %s is passphrase protected", cfg.IdentityFile)
		}
		return nil, fmt.Errorf("parse identity file %s: %w", cfg.IdentityFile, err)
	}

	var hostKeyCallback ssh.HostKeyCallback
	if cfg.InsecureIgnoreHostKey {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	} else {
		hostKeyCallback, err = knownhosts.New(cfg.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("load known hosts %s: %w", cfg.KnownHostsFile, err)
		}
	}

	return &ssh.ClientConfig{
		User:            username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         cfg.DialTimeout,
	}, nil
}

// Run executes the shell-quoted command line on the remote host. When ctx or
// timeout expires first the session is closed and the context error returned.
func (s *SSHRunner) Run(parent context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	session, err := s.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("open session on %s: %w", s.addr, err)
	}
	defer func() { _ = session.Close() }()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := session.CombinedOutput(ShellJoin(name, args...))
		done <- result{out, err}
	}()

	select {
	case res := <-done:
		return res.out, res.err
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		_ = session.Close()
		return nil, fmt.Errorf("%s on %s: %w", name, s.addr, ctx.Err())
	}
}

func (s *SSHRunner) Close() error {
	return s.client.Close()
}
