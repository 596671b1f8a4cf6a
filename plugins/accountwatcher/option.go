package accountwatcher

import "github.com/bft-labs/shiprelay/pkg/shiprelay"

// WithAccountWatcher returns a shiprelay Option that reloads accounts when
// the configured accounts file changes.
//
// Usage:
//
//	r, err := shiprelay.New(cfg,
//	    accountwatcher.WithAccountWatcher(accountwatcher.Config{
//	        DebounceDelay: 500 * time.Millisecond,
//	    }),
//	)
func WithAccountWatcher(cfg Config) shiprelay.Option {
	return shiprelay.WithPlugin(New(cfg))
}

// WithDefaultAccountWatcher returns a shiprelay Option that enables
// account watching with default settings.
func WithDefaultAccountWatcher() shiprelay.Option {
	return WithAccountWatcher(DefaultConfig())
}
