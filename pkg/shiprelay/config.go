package shiprelay

import (
	"fmt"
	"strings"
	"time"

	httpAdapter "github.com/bft-labs/shiprelay/internal/adapters/http"
	"github.com/bft-labs/shiprelay/internal/app"
	"github.com/bft-labs/shiprelay/internal/domain"
)

// DefaultGatewayURL is the OrderDesk v2 API base URL.
const DefaultGatewayURL = httpAdapter.DefaultGatewayURL

// Config holds the relay settings. Zero values are replaced by defaults in
// SetDefaults.
type Config struct {
	// GatewayURL is the OrderDesk API base URL.
	GatewayURL string

	// AccountsFile is an optional TOML accounts file. When empty the
	// built-in store table is used.
	AccountsFile string

	// CycleInterval is the time between dispatch cycles. Default: 5s.
	CycleInterval time.Duration

	// Concurrency bounds in-flight order lookups per cycle. Default: 10.
	Concurrency int

	// HTTPTimeout bounds every gateway call. Default: 15s.
	HTTPTimeout time.Duration

	// ShutdownTimeout bounds the final flush cycle on Stop. Default: 30s.
	ShutdownTimeout time.Duration
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	if c.GatewayURL == "" {
		c.GatewayURL = DefaultGatewayURL
	}
	c.GatewayURL = strings.TrimRight(c.GatewayURL, "/")
	if c.CycleInterval == 0 {
		c.CycleInterval = app.DefaultCycleInterval
	}
	if c.Concurrency == 0 {
		c.Concurrency = app.DefaultConcurrency
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = app.DefaultCallTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = app.ShutdownTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.GatewayURL == "" {
		return fmt.Errorf("%w: gateway URL is required", domain.ErrInvalidConfig)
	}
	if c.CycleInterval <= 0 {
		return fmt.Errorf("%w: cycle interval must be positive", domain.ErrInvalidConfig)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency must be positive", domain.ErrInvalidConfig)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: HTTP timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", domain.ErrInvalidConfig)
	}
	return nil
}
