// Package shiprelay is a relay for shipment tracking notifications.
//
// Example usage:
//
//	cfg := shiprelay.DefaultConfig()
//	cfg.AccountsFile = "/etc/shiprelay/accounts.toml"
//	relay, err := shiprelay.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := shiprelay.Run(ctx, relay); err != nil {
//	    log.Fatal(err)
//	}
//
// The embeddable API lives in pkg/shiprelay; this package re-exports its
// entry points.
package shiprelay

import (
	"context"

	"github.com/bft-labs/shiprelay/pkg/shiprelay"
)

// Config holds the relay settings.
type Config = shiprelay.Config

// Relay is the embeddable relay.
type Relay = shiprelay.Relay

// Option configures optional behavior of a Relay.
type Option = shiprelay.Option

// ShipmentEvent is one tracking notification.
type ShipmentEvent = shiprelay.ShipmentEvent

// DefaultGatewayURL is the OrderDesk v2 API base URL.
const DefaultGatewayURL = shiprelay.DefaultGatewayURL

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

// New creates a Relay. See pkg/shiprelay.New.
func New(cfg Config, opts ...Option) (*Relay, error) {
	return shiprelay.New(cfg, opts...)
}

// Run starts the relay and blocks until ctx is cancelled, then stops it,
// running the final flush cycle.
func Run(ctx context.Context, relay *Relay) error {
	if err := relay.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return relay.Stop()
}
