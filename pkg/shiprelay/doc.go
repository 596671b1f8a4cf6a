// Package shiprelay provides an embeddable shipment-tracking relay.
//
// A Relay buffers shipment notifications in memory and, on a fixed
// interval, drains the buffer, resolves every notification to an order on
// the OrderDesk API with bounded concurrency, groups the resolved
// shipments by store and submits one batch per store.
//
// # Basic Usage
//
//	relay, err := shiprelay.New(shiprelay.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := relay.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	relay.Enqueue(shiprelay.ShipmentEvent{
//	    ExternalReference: "21633-100",
//	    TrackingNumber:    "1Z999",
//	    CarrierCode:       "UPS",
//	    ShipmentMethod:    "Ground",
//	})
//
//	// ... run until shutdown signal ...
//
//	if err := relay.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Accounts
//
// Without further configuration the relay serves the built-in store table
// with API keys read from STORE_<ID> environment variables. Set
// [Config.AccountsFile] to load stores from a TOML file instead, or pass
// [WithAccounts] to supply them directly.
//
// # Event Handling
//
// Implement [EventHandler] (embedding [BaseEventHandler] for no-op
// defaults) and pass it via [WithEventHandler] to observe state changes,
// enqueues and completed cycles. Handlers are called synchronously and
// should return quickly.
//
// # Lifecycle States
//
// A Relay is in one of five states: [StateStopped], [StateStarting],
// [StateRunning], [StateStopping] or [StateCrashed]. Stop runs one final
// cycle so events accepted before shutdown are attempted.
package shiprelay
