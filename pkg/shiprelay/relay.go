package shiprelay

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	httpAdapter "github.com/bft-labs/shiprelay/internal/adapters/http"
	"github.com/bft-labs/shiprelay/internal/app"
	"github.com/bft-labs/shiprelay/internal/directory"
	"github.com/bft-labs/shiprelay/internal/ports"
	"github.com/bft-labs/shiprelay/pkg/log"
)

// shutdownGrace is added to the flush deadline when waiting for the
// scheduler to exit.
const shutdownGrace = 2 * time.Second

// Relay is a shipment-tracking relay that can be embedded in other
// applications. Use New() to create an instance, then Start() to begin
// dispatching.
type Relay struct {
	config     Config
	opts       options
	lifecycle  *app.Lifecycle
	queue      *app.Queue
	dispatcher *app.Dispatcher
	scheduler  *app.Scheduler
	directory  *directory.Reloadable
	emitter    *eventEmitterWrapper
	logger     ports.Logger
	plugins    []Plugin

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Relay with the given configuration.
// The instance is created in StateStopped; call Start() to begin
// dispatching. Returns an error if the configuration or the account
// source is invalid.
func New(cfg Config, opts ...Option) (*Relay, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions(&http.Client{Timeout: cfg.HTTPTimeout}, os.Getenv)
	for _, opt := range opts {
		opt(&o)
	}

	var logger ports.Logger = log.NewNoopLogger()
	if o.logger != nil {
		logger = o.logger
	}

	accounts, err := loadAccounts(cfg, o)
	if err != nil {
		return nil, err
	}
	dir := directory.NewReloadable(accounts)

	gateway := o.gateway
	if gateway == nil {
		gateway = httpAdapter.NewOrderDeskGateway(cfg.GatewayURL, o.httpClient, logger)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	queue := app.NewQueue()
	dispatcher := app.NewDispatcher(app.DispatcherConfig{
		Concurrency: cfg.Concurrency,
		CallTimeout: cfg.HTTPTimeout,
	}, queue, dir, gateway, logger, emitter)
	scheduler := app.NewScheduler(app.SchedulerConfig{
		Interval:     cfg.CycleInterval,
		FlushTimeout: cfg.ShutdownTimeout,
	}, dispatcher, logger)

	logger.Info("accounts loaded",
		ports.Int("accounts", accounts.Len()),
		ports.Int("with_credentials", accounts.Configured()),
		ports.String("source", accountSource(cfg, o)),
	)

	return &Relay{
		config:     cfg,
		opts:       o,
		lifecycle:  app.NewLifecycle(logger, emitter),
		queue:      queue,
		dispatcher: dispatcher,
		scheduler:  scheduler,
		directory:  dir,
		emitter:    emitter,
		logger:     logger,
		plugins:    o.plugins,
	}, nil
}

func loadAccounts(cfg Config, o options) (*directory.Static, error) {
	switch {
	case len(o.accounts) > 0:
		return directory.NewStatic(o.accounts)
	case cfg.AccountsFile != "":
		return directory.LoadFile(cfg.AccountsFile, o.getenv)
	default:
		return directory.Builtin(o.getenv), nil
	}
}

func accountSource(cfg Config, o options) string {
	switch {
	case len(o.accounts) > 0:
		return "options"
	case cfg.AccountsFile != "":
		return cfg.AccountsFile
	default:
		return "builtin"
	}
}

// Start begins dispatching cycles in the background.
// Returns immediately after starting the scheduler goroutine.
// Returns ErrAlreadyRunning if the relay is not stopped, or the first
// plugin initialization error.
func (r *Relay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	if err := r.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		AccountsFile:   r.config.AccountsFile,
		Logger:         r.logger,
		ReloadAccounts: r.ReloadAccounts,
	}
	for i, p := range r.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			r.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			r.shutdownPlugins(r.plugins[:i])
			_ = r.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
		r.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	if err := r.lifecycle.TransitionTo(app.StateRunning, "scheduler starting"); err != nil {
		cancel()
		return err
	}

	r.lifecycle.Go(func() {
		_ = r.scheduler.Run(runCtx)
	})
	return nil
}

// Stop cancels the scheduler, waits for the final flush cycle and shuts
// down plugins. Returns ErrNotRunning if the relay is not running and
// ErrShutdownTimeout if the flush did not finish in time.
func (r *Relay) Stop() error {
	r.mu.Lock()

	if !r.lifecycle.CanStop() {
		r.mu.Unlock()
		return ErrNotRunning
	}
	if err := r.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		r.mu.Unlock()
		return err
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	err := r.lifecycle.WaitWithTimeout(r.config.ShutdownTimeout + shutdownGrace)

	r.shutdownPlugins(r.plugins)

	if err != nil {
		_ = r.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = r.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// shutdownPlugins shuts plugins down in reverse order.
func (r *Relay) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			r.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
		} else {
			r.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (r *Relay) Status() State {
	return convertState(r.lifecycle.State())
}

// Enqueue appends events to the queue for the next cycle and returns the
// queue length after the append. It never blocks on network work and is
// accepted in every lifecycle state.
func (r *Relay) Enqueue(events ...ShipmentEvent) int {
	depth := r.queue.Enqueue(events...)
	r.emitter.onEnqueue(len(events), depth)
	return depth
}

// QueueLen returns the number of events waiting for the next cycle.
func (r *Relay) QueueLen() int {
	return r.queue.Len()
}

// RunCycle runs one dispatch cycle on the calling goroutine. It is meant
// for one-shot use and returns ErrAlreadyRunning while the scheduler owns
// the queue.
func (r *Relay) RunCycle(ctx context.Context) (CycleResult, error) {
	if s := r.lifecycle.State(); s != app.StateStopped && s != app.StateCrashed {
		return CycleResult{}, ErrAlreadyRunning
	}
	return r.dispatcher.RunCycle(ctx), nil
}

// ReloadAccounts re-reads the accounts file and atomically replaces the
// account directory. Cycles already running keep resolving against the
// snapshot they looked up. On error the current directory is kept.
func (r *Relay) ReloadAccounts() error {
	if r.config.AccountsFile == "" {
		return fmt.Errorf("%w: no accounts file configured", ErrInvalidConfig)
	}
	next, err := directory.LoadFile(r.config.AccountsFile, r.opts.getenv)
	if err != nil {
		r.logger.Warn("accounts reload failed, keeping current accounts",
			ports.String("path", r.config.AccountsFile),
			ports.Err(err))
		return err
	}
	r.directory.Swap(next)
	r.logger.Info("accounts reloaded",
		ports.String("path", r.config.AccountsFile),
		ports.Int("accounts", next.Len()),
		ports.Int("with_credentials", next.Configured()),
	)
	return nil
}

// Lookup returns the account with the given id from the current directory.
func (r *Relay) Lookup(accountID string) (Account, bool) {
	return r.directory.Lookup(accountID)
}
