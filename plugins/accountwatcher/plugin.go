// Package accountwatcher provides accounts file monitoring for shiprelay.
// When enabled, it watches the configured accounts file and reloads the
// account directory after it changes.
package accountwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/shiprelay/pkg/log"
	"github.com/bft-labs/shiprelay/pkg/shiprelay"
)

// Plugin reloads the relay's accounts when the accounts file changes.
// Bursts of file events are collapsed into one reload by a debounce timer.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay time.Duration

	// Runtime state
	path     string
	reload   func() error
	logger   shiprelay.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	reloads  int
}

// Config holds configuration options for the account watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 250 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 250 * time.Millisecond,
	}
}

// New creates a new account watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 250 * time.Millisecond
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "accountwatcher"
}

// Initialize starts watching the accounts file. It is a no-op when the
// relay serves the built-in store table.
func (p *Plugin) Initialize(ctx context.Context, cfg shiprelay.PluginConfig) error {
	p.mu.Lock()
	p.path = cfg.AccountsFile
	p.reload = cfg.ReloadAccounts
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	p.mu.Unlock()

	if p.path == "" || p.reload == nil {
		p.logger.Warn("account watcher disabled: no accounts file configured")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory so editors that replace the file are still seen.
	dir := filepath.Dir(p.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("account watcher started", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the watcher and any pending reload.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

// Reloads returns how many reloads have been attempted.
func (p *Plugin) Reloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reloads
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	target := filepath.Clean(p.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			p.scheduleReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("account watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) scheduleReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.mu.Lock()
		p.reloads++
		p.mu.Unlock()

		// ReloadAccounts logs the outcome and keeps the previous accounts
		// on failure.
		_ = p.reload()
	})
}

// Ensure Plugin implements shiprelay.Plugin.
var _ shiprelay.Plugin = (*Plugin)(nil)
