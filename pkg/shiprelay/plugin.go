package shiprelay

import "context"

// Plugin extends a Relay with optional background behavior.
// Plugins are initialized in registration order on Start and shut down in
// reverse order on Stop.
type Plugin interface {
	// Name returns a short identifier used in logs.
	Name() string
	// Initialize starts the plugin. Returning an error aborts Start.
	Initialize(ctx context.Context, cfg PluginConfig) error
	// Shutdown stops the plugin and waits for its goroutines.
	Shutdown(ctx context.Context) error
}

// PluginConfig is passed to plugins on initialization.
type PluginConfig struct {
	// AccountsFile is the configured accounts file, empty when the
	// built-in store table is in use.
	AccountsFile string

	// Logger is the relay's logger.
	Logger Logger

	// ReloadAccounts re-reads AccountsFile and swaps the account
	// directory. On error the previous directory stays in place.
	ReloadAccounts func() error
}

// BasePlugin implements Plugin with no-ops. Embed it and override Name.
type BasePlugin struct{}

func (BasePlugin) Name() string                                   { return "base" }
func (BasePlugin) Initialize(context.Context, PluginConfig) error { return nil }
func (BasePlugin) Shutdown(context.Context) error                 { return nil }
