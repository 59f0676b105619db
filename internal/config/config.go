// Package config handles TOML-based configuration loading and validation.
// The password is deliberately not a config field: it comes from the
// environment or an interactive prompt and is only held in memory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
)

const appName = "streamable"

// Environment variables consulted after the config file.
const (
	EnvUsername = "STREAMABLE_USERNAME"
	EnvPassword = "STREAMABLE_PASSWORD"
)

// Config holds all application configuration.
type Config struct {
	APIBase     string `toml:"api_base"`
	Username    string `toml:"username"`
	Player      string `toml:"player"`
	Timeout     string `toml:"timeout"`
	History     bool   `toml:"history"`
	DownloadDir string `toml:"download_dir"`
	Debug       bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		APIBase:     "api.streamable.com",
		Player:      "mpv",
		Timeout:     "30s",
		History:     true,
		DownloadDir: "~/Videos/streamable",
		Debug:       false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, merges it over the defaults and applies
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parsing config %s: unknown keys %v", path, undecoded)
		}
	}

	if user := os.Getenv(EnvUsername); user != "" {
		cfg.Username = user
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds. Every problem
// is reported, not just the first.
func (c *Config) Validate() error {
	var result error

	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		result = multierror.Append(result, fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player))
	}

	if c.APIBase == "" {
		result = multierror.Append(result, fmt.Errorf("api_base cannot be empty"))
	} else if strings.Contains(c.APIBase, "://") || strings.ContainsAny(c.APIBase, "/?#") {
		result = multierror.Append(result, fmt.Errorf("api_base must be a bare host, got %q", c.APIBase))
	}

	if d, err := time.ParseDuration(c.Timeout); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err))
	} else if d <= 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must be positive, got %s", d))
	}

	if strings.Contains(c.Username, ":") {
		result = multierror.Append(result, fmt.Errorf("username cannot contain ':'"))
	}

	return result
}

// TimeoutDuration returns the parsed request timeout, or zero if it is invalid.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// HistoryPath returns the path to the history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName, "history.db"), nil
}
