package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("TYPESMITH_CONFIG", path)
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 4, cfg.Editor.IndentWidth)
	require.True(t, cfg.Editor.Backup)
	require.Empty(t, cfg.Source.StartDir)
	require.Equal(t, 10*time.Second, cfg.Source.ConnectTimeout)
	require.Equal(t, 15*time.Second, cfg.Source.OpTimeout)
	require.Equal(t, 22, cfg.Remote.Port)
	require.Empty(t, cfg.Remote.Host)
}

func TestLoadFromFile(t *testing.T) {
	path := isolate(t)
	toml := `
[editor]
indent_width = 2
backup = false

[source]
start_dir = "/srv/mpmissions"
connect_timeout = "3s"
op_timeout = "5s"

[remote]
host = "play.example.com"
port = 2302
user = "admin"
key_path = "/home/admin/.ssh/id_ed25519"
`
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 2, cfg.Editor.IndentWidth)
	require.False(t, cfg.Editor.Backup)
	require.Equal(t, "/srv/mpmissions", cfg.Source.StartDir)
	require.Equal(t, 3*time.Second, cfg.Source.ConnectTimeout)
	require.Equal(t, 5*time.Second, cfg.Source.OpTimeout)
	require.Equal(t, "play.example.com", cfg.Remote.Host)
	require.Equal(t, 2302, cfg.Remote.Port)
	require.Equal(t, "admin", cfg.Remote.User)
	require.Equal(t, "/home/admin/.ssh/id_ed25519", cfg.Remote.KeyPath)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TYPESMITH_EDITOR_INDENT_WIDTH", "2")
	t.Setenv("TYPESMITH_REMOTE_HOST", "env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Editor.IndentWidth)
	require.Equal(t, "env.example.com", cfg.Remote.Host)
}

func TestLoadClampsBadValues(t *testing.T) {
	path := isolate(t)
	toml := `
[editor]
indent_width = 99

[source]
connect_timeout = "0s"

[remote]
port = 700000
`
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Editor.IndentWidth)
	require.Equal(t, 10*time.Second, cfg.Source.ConnectTimeout)
	require.Equal(t, 22, cfg.Remote.Port)
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Remote.Host = "play.example.com"
	cfg.Remote.Port = 2222
	cfg.Remote.User = "admin"
	cfg.Editor.IndentWidth = 2

	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "play.example.com", got.Remote.Host)
	require.Equal(t, 2222, got.Remote.Port)
	require.Equal(t, "admin", got.Remote.User)
	require.Equal(t, 2, got.Editor.IndentWidth)
}
