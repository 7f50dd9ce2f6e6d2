package source

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func TestRemoteConfigAddr(t *testing.T) {
	t.Parallel()

	require.Equal(t, "example.com:22", RemoteConfig{Host: "example.com"}.Addr())
	require.Equal(t, "example.com:2222", RemoteConfig{Host: "example.com", Port: 2222}.Addr())
}

func TestDialRequiresCredentials(t *testing.T) {
	t.Parallel()

	r, err := Dial(RemoteConfig{Host: "127.0.0.1", Port: 22, User: "survivor"})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "survivor", authErr.User)
	require.Equal(t, StateFaulted, r.State())
	require.Equal(t, err, r.Cause())
}

func TestDialMissingKeyFile(t *testing.T) {
	t.Parallel()

	_, err := Dial(RemoteConfig{
		Host:    "127.0.0.1",
		User:    "survivor",
		KeyPath: filepath.Join(t.TempDir(), "no_such_key"),
	})
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrNotFound, ioErr.Kind)
}

func TestDialConnectionRefused(t *testing.T) {
	t.Parallel()

	// grab a port that is certainly closed
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	require.NoError(t, ln.Close())

	r, err := Dial(RemoteConfig{
		Host:           "127.0.0.1",
		Port:           addr.Port,
		User:           "survivor",
		Password:       "pw",
		ConnectTimeout: 2 * time.Second,
	})
	require.Error(t, err)
	require.Equal(t, StateFaulted, r.State())

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrTransport, ioErr.Kind)
}

func TestDialHandshakeTimeout(t *testing.T) {
	t.Parallel()

	// a listener that accepts and then stays silent forces the ssh
	// handshake to hit the connect deadline
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	start := time.Now()
	r, err := Dial(RemoteConfig{
		Host:           "127.0.0.1",
		Port:           addr.Port,
		User:           "survivor",
		Password:       "pw",
		ConnectTimeout: 300 * time.Millisecond,
	})
	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
	require.Equal(t, StateFaulted, r.State())

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrTimeout, ioErr.Kind)
}

// rejectingSSHServer accepts TCP connections and runs the ssh handshake with
// a server that refuses every credential, so the client sees a real
// authentication rejection rather than a transport fault.
func rejectingSSHServer(t *testing.T) *net.TCPAddr {
	t.Helper()

	serverCfg := &ssh.ServerConfig{
		PasswordCallback: func(ssh.ConnMetadata, []byte) (*ssh.Permissions, error) {
			return nil, errors.New("access denied")
		},
	}
	_, hostKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := ssh.NewSignerFromKey(hostKey)
	require.NoError(t, err)
	serverCfg.AddHostKey(signer)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				_, _, _, _ = ssh.NewServerConn(conn, serverCfg)
				_ = conn.Close()
			}()
		}
	}()
	return ln.Addr().(*net.TCPAddr)
}

func TestDialRejectedPassword(t *testing.T) {
	t.Parallel()

	addr := rejectingSSHServer(t)
	r, err := Dial(RemoteConfig{
		Host:           "127.0.0.1",
		Port:           addr.Port,
		User:           "survivor",
		Password:       "wrong",
		ConnectTimeout: 5 * time.Second,
	})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "survivor", authErr.User)
	require.Equal(t, StateFaulted, r.State())

	// the rejection must not be mistaken for a transport fault
	var ioErr *IOError
	require.False(t, errors.As(err, &ioErr))
}

func TestOpsFailFastWhenNotConnected(t *testing.T) {
	t.Parallel()

	r, err := Dial(RemoteConfig{Host: "127.0.0.1", User: "survivor"})
	require.Error(t, err)

	_, err = r.List("/")
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrNotReady, ioErr.Kind)
	require.Contains(t, err.Error(), "faulted")

	_, err = r.ReadFile("/types.xml")
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrNotReady, ioErr.Kind)

	err = r.WriteFile("/types.xml", []byte("x"))
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrNotReady, ioErr.Kind)
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	r, _ := Dial(RemoteConfig{Host: "127.0.0.1", User: "survivor"})
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	require.Equal(t, StateDisconnected, r.State())

	_, err := r.List("/")
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, ErrNotReady, ioErr.Kind)
	require.Contains(t, err.Error(), "disconnected")
}

func TestConnStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "disconnected", StateDisconnected.String())
	require.Equal(t, "connecting", StateConnecting.String())
	require.Equal(t, "connected", StateConnected.String())
	require.Equal(t, "faulted", StateFaulted.String())
}

func TestRemoteSessionID(t *testing.T) {
	t.Parallel()

	a, _ := Dial(RemoteConfig{Host: "127.0.0.1", User: "x"})
	b, _ := Dial(RemoteConfig{Host: "127.0.0.1", User: "x"})
	require.NotEmpty(t, a.ID())
	require.NotEqual(t, a.ID(), b.ID())
}
