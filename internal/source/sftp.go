package source

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// ConnState is the remote session lifecycle:
// Disconnected -> Connecting -> Connected -> (Disconnected | Faulted).
type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateFaulted
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFaulted:
		return "faulted"
	default:
		return "disconnected"
	}
}

// RemoteConfig carries the connect prompt's inputs plus the timeout bounds
// from configuration. One of Password or KeyPath must be set.
type RemoteConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	KeyPath        string
	Passphrase     string
	ConnectTimeout time.Duration
	OpTimeout      time.Duration
}

func (c RemoteConfig) Addr() string {
	port := c.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(c.Host, fmt.Sprintf("%d", port))
}

// Remote runs file operations over an authenticated SSH/SFTP session. The
// session is acquired by Dial and must be released with Close on every
// exit path. Operations attempted while not Connected fail fast with a
// not-ready error instead of blocking.
type Remote struct {
	mu    sync.Mutex
	id    string
	state ConnState
	cause error

	cfg  RemoteConfig
	conn net.Conn
	ssh  *ssh.Client
	sftp *sftp.Client
}

// Dial establishes the session, bounded by cfg.ConnectTimeout. On failure
// the returned Remote is in StateFaulted with the cause distinguishing
// auth rejection from network trouble.
func Dial(cfg RemoteConfig) (*Remote, error) {
	r := &Remote{id: uuid.NewString(), cfg: cfg, state: StateConnecting}
	if err := r.connect(); err != nil {
		r.state = StateFaulted
		r.cause = err
		return r, err
	}
	r.state = StateConnected
	return r, nil
}

func (r *Remote) connect() error {
	timeout := r.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	auth, err := r.cfg.authMethods()
	if err != nil {
		return err
	}

	addr := r.cfg.Addr()
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return classifyRemote(r.cfg.User, "connect", addr, err)
	}

	clientCfg := &ssh.ClientConfig{
		User: r.cfg.User,
		Auth: auth,
		// The original tool trusts the host on first use; host-key pinning
		// is the operator's job via ssh config, not this editor's.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	// The handshake itself must also respect the bound, not just the dial.
	_ = conn.SetDeadline(time.Now().Add(timeout))
	sconn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		_ = conn.Close()
		return classifyRemote(r.cfg.User, "connect", addr, err)
	}
	_ = conn.SetDeadline(time.Time{})

	client := ssh.NewClient(sconn, chans, reqs)
	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		_ = client.Close()
		_ = conn.Close()
		return classifyRemote(r.cfg.User, "sftp", addr, err)
	}

	r.conn = conn
	r.ssh = client
	r.sftp = sftpClient
	return nil
}

func (c RemoteConfig) authMethods() ([]ssh.AuthMethod, error) {
	if c.KeyPath != "" {
		keyData, err := os.ReadFile(c.KeyPath)
		if err != nil {
			return nil, &IOError{Kind: ErrNotFound, Op: "read key", Path: c.KeyPath, Err: err}
		}
		var signer ssh.Signer
		if c.Passphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(keyData, []byte(c.Passphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(keyData)
		}
		if err != nil {
			return nil, &AuthError{User: c.User, Err: err}
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	}
	if c.Password != "" {
		return []ssh.AuthMethod{ssh.Password(c.Password)}, nil
	}
	return nil, &AuthError{User: c.User, Err: errors.New("no password or key provided")}
}

// ID is the session handle shown in status lines.
func (r *Remote) ID() string { return r.id }

// State reports the session lifecycle state.
func (r *Remote) State() ConnState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Cause is the failure that moved the session to StateFaulted, nil otherwise.
func (r *Remote) Cause() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cause
}

func (r *Remote) Kind() Kind { return KindRemote }

// Close releases the session. Safe to call in any state and more than once.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sftp != nil {
		_ = r.sftp.Close()
		r.sftp = nil
	}
	if r.ssh != nil {
		_ = r.ssh.Close()
		r.ssh = nil
	}
	if r.conn != nil {
		_ = r.conn.Close()
		r.conn = nil
	}
	r.state = StateDisconnected
	return nil
}

func (r *Remote) List(path string) ([]DirEntry, error) {
	if err := r.ready("list", path); err != nil {
		return nil, err
	}
	defer r.opDeadline()()
	infos, err := r.sftp.ReadDir(path)
	if err != nil {
		return nil, r.classifyOp("list", path, err)
	}
	entries := make([]DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, DirEntry{Name: info.Name(), IsDir: info.IsDir()})
	}
	SortEntries(entries)
	return entries, nil
}

func (r *Remote) ReadFile(path string) ([]byte, error) {
	if err := r.ready("read", path); err != nil {
		return nil, err
	}
	defer r.opDeadline()()
	f, err := r.sftp.Open(path)
	if err != nil {
		return nil, r.classifyOp("read", path, err)
	}
	defer f.Close()
	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, r.classifyOp("read", path, err)
	}
	return buf, nil
}

// WriteFile uploads to a temp name next to the target and renames it into
// place, so a dropped connection mid-transfer never corrupts the target.
func (r *Remote) WriteFile(path string, data []byte) error {
	if err := r.ready("write", path); err != nil {
		return err
	}
	defer r.opDeadline()()

	tmp := fmt.Sprintf("%s.%s.tmp", path, r.id[:8])
	f, err := r.sftp.Create(tmp)
	if err != nil {
		return r.classifyOp("write", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = r.sftp.Remove(tmp)
		return r.classifyOp("write", path, err)
	}
	if err := f.Close(); err != nil {
		_ = r.sftp.Remove(tmp)
		return r.classifyOp("write", path, err)
	}
	if err := r.sftp.PosixRename(tmp, path); err != nil {
		// Servers without posix-rename@openssh.com: remove then rename.
		_ = r.sftp.Remove(path)
		if err := r.sftp.Rename(tmp, path); err != nil {
			_ = r.sftp.Remove(tmp)
			return r.classifyOp("write", path, err)
		}
	}
	return nil
}

func (r *Remote) ready(op, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateConnected {
		return &IOError{Kind: ErrNotReady, Op: op, Path: path,
			Err: fmt.Errorf("session %s", r.state)}
	}
	return nil
}

// opDeadline bounds a single operation on the underlying conn; the
// returned func clears the deadline again.
func (r *Remote) opDeadline() func() {
	timeout := r.cfg.OpTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	_ = r.conn.SetDeadline(time.Now().Add(timeout))
	return func() { _ = r.conn.SetDeadline(time.Time{}) }
}

func (r *Remote) classifyOp(op, path string, err error) error {
	ioErr := classifyRemote(r.cfg.User, op, path, err)
	var asIO *IOError
	if errors.As(ioErr, &asIO) && (asIO.Kind == ErrTimeout || asIO.Kind == ErrTransport) {
		// A dead peer poisons the whole session, not just this op.
		r.mu.Lock()
		if r.state == StateConnected {
			r.state = StateFaulted
			r.cause = ioErr
		}
		r.mu.Unlock()
	}
	return ioErr
}

func classifyRemote(user, op, path string, err error) error {
	// x/crypto/ssh's client wraps a rejected credential in a plain handshake
	// error with no exported type, so the message is the only signal.
	if strings.Contains(err.Error(), "ssh: unable to authenticate") {
		return &AuthError{User: user, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &IOError{Kind: ErrTimeout, Op: op, Path: path, Err: err}
	}
	switch {
	case os.IsNotExist(err):
		return &IOError{Kind: ErrNotFound, Op: op, Path: path, Err: err}
	case os.IsPermission(err):
		return &IOError{Kind: ErrPermission, Op: op, Path: path, Err: err}
	}
	return &IOError{Kind: ErrTransport, Op: op, Path: path, Err: err}
}
