package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SHIPRELAY_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", os.Getenv("SHIPRELAY_LISTEN_ADDR"), &cfg.ListenAddr)
	s.setString("gateway-url", os.Getenv("SHIPRELAY_GATEWAY_URL"), &cfg.GatewayURL)
	s.setString("accounts-file", os.Getenv("SHIPRELAY_ACCOUNTS_FILE"), &cfg.AccountsFile)
	s.setString("log-level", os.Getenv("SHIPRELAY_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("interval", os.Getenv("SHIPRELAY_CYCLE_INTERVAL"), &cfg.CycleInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("SHIPRELAY_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv("SHIPRELAY_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	if err := s.setIntFromString("concurrency", os.Getenv("SHIPRELAY_CONCURRENCY"), &cfg.Concurrency); err != nil {
		return err
	}
	if err := s.setIntFromString("max-body-bytes", os.Getenv("SHIPRELAY_MAX_BODY_BYTES"), &cfg.MaxBodyBytes); err != nil {
		return err
	}

	return nil
}
