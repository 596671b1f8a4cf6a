package domain

import "errors"

// Lifecycle errors are returned by the public API and can be checked with
// errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("shiprelay: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("shiprelay: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("shiprelay: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("shiprelay: invalid configuration")
)

// Pipeline errors classify why a shipment or batch was not relayed.
var (
	// ErrInvalidAccount means no account could be derived from the
	// external reference.
	ErrInvalidAccount = errors.New("shiprelay: invalid store ID")

	// ErrMissingCredential means the account exists but has no gateway
	// credential configured.
	ErrMissingCredential = errors.New("shiprelay: API key not found")

	// ErrOrderNotFound means the gateway returned no order for the reference.
	ErrOrderNotFound = errors.New("shiprelay: order not found")

	// ErrUpstream means the gateway answered with a non-success status or
	// a body that could not be understood.
	ErrUpstream = errors.New("shiprelay: upstream error")

	// ErrDuplicateAccount is returned when a directory is built from a
	// table that lists the same account id twice.
	ErrDuplicateAccount = errors.New("shiprelay: duplicate account id")
)
