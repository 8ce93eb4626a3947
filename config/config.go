// Package config loads the optional parcomb.toml configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileName is looked up in the working directory.
const FileName = "parcomb.toml"

// Config holds the complete command line configuration
type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	LSP    LSPConfig    `toml:"lsp"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// OutputConfig holds output settings of the parse commands
type OutputConfig struct {
	Format string `toml:"format"`
}

// LSPConfig holds language server settings
type LSPConfig struct {
	Name string `toml:"name"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("load config %s: unknown key %s", path, undecoded[0])
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Discover loads the first config file found in the working directory or
// the user config directory. Without one it returns Default().
func Discover() (*Config, error) {
	paths := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "parcomb", "config.toml"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.LSP.Name == "" {
		c.LSP.Name = "parcomb"
	}
}
