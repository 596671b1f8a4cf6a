package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	ListenAddr      string `toml:"listen_addr"`
	GatewayURL      string `toml:"gateway_url"`
	AccountsFile    string `toml:"accounts_file"`
	CycleInterval   string `toml:"cycle_interval"`
	Concurrency     int    `toml:"concurrency"`
	HTTPTimeout     string `toml:"http_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	MaxBodyBytes    int    `toml:"max_body_bytes"`
	LogLevel        string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.shiprelay/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".shiprelay", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
// A relative accounts_file is resolved against the config file's directory
// when configDir is not empty.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool, configDir string) error {
	s := newConfigSetter(changed)

	if fc.AccountsFile != "" && configDir != "" && !filepath.IsAbs(fc.AccountsFile) {
		fc.AccountsFile = filepath.Join(configDir, fc.AccountsFile)
	}

	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("gateway-url", fc.GatewayURL, &cfg.GatewayURL)
	s.setString("accounts-file", fc.AccountsFile, &cfg.AccountsFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("interval", fc.CycleInterval, &cfg.CycleInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setInt("concurrency", fc.Concurrency, &cfg.Concurrency)
	s.setInt("max-body-bytes", fc.MaxBodyBytes, &cfg.MaxBodyBytes)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
