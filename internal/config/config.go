package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Editor EditorConfig
	Source SourceConfig
	Remote RemoteConfig
}

// EditorConfig holds document-handling settings.
type EditorConfig struct {
	IndentWidth int
	Backup      bool
}

// SourceConfig holds file-source settings.
type SourceConfig struct {
	StartDir       string
	ConnectTimeout time.Duration
	OpTimeout      time.Duration
}

// RemoteConfig holds the remembered remote-connection form defaults.
// Passwords and passphrases are never persisted; the form always asks.
type RemoteConfig struct {
	Host    string
	Port    int
	User    string
	KeyPath string
}

// Load reads configuration from file and env. Env var overrides use prefix TYPESMITH_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("editor.indent_width", 4)
	v.SetDefault("editor.backup", true)
	v.SetDefault("source.start_dir", "")
	v.SetDefault("source.connect_timeout", "10s")
	v.SetDefault("source.op_timeout", "15s")
	v.SetDefault("remote.host", "")
	v.SetDefault("remote.port", 22)
	v.SetDefault("remote.user", "")
	v.SetDefault("remote.key_path", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TYPESMITH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "typesmith"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TYPESMITH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return clamp(c), nil
}

// clamp keeps file-supplied values inside usable ranges instead of failing
// startup over a typo.
func clamp(c Config) Config {
	if c.Editor.IndentWidth < 1 || c.Editor.IndentWidth > 8 {
		c.Editor.IndentWidth = 4
	}
	if c.Source.ConnectTimeout <= 0 {
		c.Source.ConnectTimeout = 10 * time.Second
	}
	if c.Source.OpTimeout <= 0 {
		c.Source.OpTimeout = 15 * time.Second
	}
	if c.Remote.Port <= 0 || c.Remote.Port > 65535 {
		c.Remote.Port = 22
	}
	return c
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used to remember the last remote host between sessions; secrets are
// deliberately not part of Config and so never land on disk.
func Save(cfg Config) error {
	path := os.Getenv("TYPESMITH_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "typesmith", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("editor.indent_width", cfg.Editor.IndentWidth)
	v.Set("editor.backup", cfg.Editor.Backup)
	v.Set("source.start_dir", cfg.Source.StartDir)
	v.Set("source.connect_timeout", cfg.Source.ConnectTimeout.String())
	v.Set("source.op_timeout", cfg.Source.OpTimeout.String())
	v.Set("remote.host", cfg.Remote.Host)
	v.Set("remote.port", cfg.Remote.Port)
	v.Set("remote.user", cfg.Remote.User)
	v.Set("remote.key_path", cfg.Remote.KeyPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
