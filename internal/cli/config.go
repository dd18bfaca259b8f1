package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/skeinlab/skein/pkg/editor"
	"github.com/skeinlab/skein/pkg/errors"
)

// Config holds the user-tunable settings, loaded from an optional TOML
// file. Zero or missing values fall back to the editor defaults.
type Config struct {
	Spacing editor.Spacing   `toml:"spacing"`
	Hit     editor.HitConfig `toml:"hit"`
	Server  ServerConfig     `toml:"server"`
}

// ServerConfig configures the snapshot HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() Config {
	return Config{
		Spacing: editor.DefaultSpacing(),
		Hit:     editor.DefaultHitConfig(),
		Server:  ServerConfig{Addr: "localhost:7070"},
	}
}

// configPath returns the default config file location,
// $XDG_CONFIG_HOME/skein/config.toml or the platform equivalent.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads settings from path, or from the default location
// when path is empty. A missing file is not an error; it yields the
// defaults. Partial files override only the keys they set.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	cfg = fillDefaults(cfg)
	if err := errors.ValidateListenAddr(cfg.Server.Addr); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// fillDefaults replaces zero values left by a partial config file.
func fillDefaults(cfg Config) Config {
	def := defaultConfig()
	if cfg.Spacing == (editor.Spacing{}) {
		cfg.Spacing = def.Spacing
	}
	if cfg.Hit == (editor.HitConfig{}) {
		cfg.Hit = def.Hit
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	return cfg
}

// newEditor builds an editor instance from the config.
func newEditor(cfg Config) *editor.Editor {
	return editor.New(
		editor.WithSpacing(cfg.Spacing),
		editor.WithHitConfig(cfg.Hit),
	)
}
