package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/shiprelay/pkg/shiprelay"
)

// DefaultListenAddr is the default ingress listen address.
const DefaultListenAddr = ":4000"

// DefaultMaxBodyBytes is the default ingress request body limit.
const DefaultMaxBodyBytes = 1 << 20

// Config holds CLI configuration for shiprelay.
type Config struct {
	ListenAddr   string
	GatewayURL   string
	AccountsFile string

	CycleInterval   time.Duration
	Concurrency     int
	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration

	MaxBodyBytes int
	LogLevel     string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      DefaultListenAddr,
		GatewayURL:      shiprelay.DefaultGatewayURL,
		CycleInterval:   5 * time.Second,
		Concurrency:     10,
		HTTPTimeout:     15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		LogLevel:        "info",
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.GatewayURL == "" {
		c.GatewayURL = shiprelay.DefaultGatewayURL
	}
	// Ensure no trailing slash
	c.GatewayURL = strings.TrimRight(c.GatewayURL, "/")

	if c.CycleInterval <= 0 {
		return fmt.Errorf("cycle interval must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	case "":
		c.LogLevel = "info"
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}

// RelayConfig returns the library configuration for the relay.
func (c Config) RelayConfig() shiprelay.Config {
	return shiprelay.Config{
		GatewayURL:      c.GatewayURL,
		AccountsFile:    c.AccountsFile,
		CycleInterval:   c.CycleInterval,
		Concurrency:     c.Concurrency,
		HTTPTimeout:     c.HTTPTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
