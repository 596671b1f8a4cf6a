package shiprelay

import "net/http"

// Option configures optional behavior of a Relay.
type Option func(*options)

type options struct {
	httpClient   HTTPClient
	logger       Logger
	gateway      OrderGateway
	accounts     []Account
	getenv       func(string) string
	eventHandler EventHandler
	plugins      []Plugin
}

func defaultOptions(client *http.Client, getenv func(string) string) options {
	return options{
		httpClient: client,
		getenv:     getenv,
	}
}

// WithHTTPClient sets the HTTP client used by the OrderDesk gateway.
// If not provided, a client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithGateway replaces the OrderDesk gateway. WithHTTPClient has no effect
// when a gateway is supplied.
func WithGateway(gateway OrderGateway) Option {
	return func(o *options) {
		o.gateway = gateway
	}
}

// WithAccounts serves the given accounts instead of the built-in store
// table or the accounts file.
func WithAccounts(accounts ...Account) Option {
	return func(o *options) {
		o.accounts = append(o.accounts, accounts...)
	}
}

// WithGetenv sets the function used to read credential environment
// variables. Defaults to os.Getenv.
func WithGetenv(getenv func(string) string) Option {
	return func(o *options) {
		o.getenv = getenv
	}
}

// WithEventHandler sets a handler for relay events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the relay starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
