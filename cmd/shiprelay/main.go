package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	httpAdapter "github.com/bft-labs/shiprelay/internal/adapters/http"
	"github.com/bft-labs/shiprelay/internal/adapters/metrics"
	"github.com/bft-labs/shiprelay/internal/cliconfig"
	"github.com/bft-labs/shiprelay/pkg/log"
	"github.com/bft-labs/shiprelay/pkg/shiprelay"
	"github.com/bft-labs/shiprelay/plugins/accountwatcher"
)

const helpDescription = `
Relay shipment tracking notifications to OrderDesk, batched per store.

Highlights:
  - Accepts a single shipment or an array on POST / and answers immediately.
  - Every few seconds, resolves queued shipments to orders with bounded
    concurrency and submits one batch per store.
  - Stores come from the built-in table (API keys in STORE_<ID>) or from an
    accounts TOML file that is reloaded when it changes.
  - Configure via file, env (SHIPRELAY_*), or flags. Metrics on /metrics.
`

var exampleUsage = strings.TrimSpace(`
  shiprelay --listen :4000
  shiprelay --config $HOME/.shiprelay/config.toml --accounts-file accounts.toml
  SHIPRELAY_LOG_LEVEL=debug shiprelay --concurrency 5 --interval 10s
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.NewLogger("info")

	root := &cobra.Command{
		Use:          "shiprelay",
		Short:        "Relay shipment tracking notifications to OrderDesk",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.shiprelay/config.toml), then apply overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed, filepath.Dir(cfgFile)); err != nil {
					return err
				}
			} else if cfgPath != "" {
				return fmt.Errorf("config file %s not found", cfgPath)
			}

			// Apply environment variables (SHIPRELAY_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger = cliconfig.NewLogger(cfg.LogLevel)
			logger.Info().Interface("config", cfg).Msg("configuration")

			return run(cfg, log.NewZerologAdapterWithLogger(logger))
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.shiprelay/config.toml)")
	root.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address")
	root.Flags().StringVar(&cfg.GatewayURL, "gateway-url", cfg.GatewayURL, "OrderDesk API base URL")
	if err := root.Flags().MarkHidden("gateway-url"); err != nil {
		logger.Info().Err(err).Msg("failed to hide gateway-url flag")
	}
	root.Flags().StringVar(&cfg.AccountsFile, "accounts-file", cfg.AccountsFile, "TOML accounts file (default: built-in store table)")

	root.Flags().DurationVar(&cfg.CycleInterval, "interval", cfg.CycleInterval, "time between dispatch cycles")
	root.Flags().IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "maximum concurrent order lookups per cycle")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "timeout for each OrderDesk request")
	root.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "time allowed for the final cycle on shutdown")
	root.Flags().IntVar(&cfg.MaxBodyBytes, "max-body-bytes", cfg.MaxBodyBytes, "maximum ingress request body size")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("shiprelay")
		os.Exit(1)
	}
}

func run(cfg cliconfig.Config, logger log.Logger) error {
	var relay *shiprelay.Relay
	collector := metrics.NewCollector(func() int {
		if relay == nil {
			return 0
		}
		return relay.QueueLen()
	})

	relay, err := shiprelay.New(cfg.RelayConfig(),
		shiprelay.WithLogger(logger),
		shiprelay.WithEventHandler(collector),
		accountwatcher.WithDefaultAccountWatcher(),
	)
	if err != nil {
		return fmt.Errorf("create relay: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpAdapter.NewRouter(httpAdapter.IngressConfig{
		MaxBodyBytes: int64(cfg.MaxBodyBytes),
		Status:       func() string { return relay.Status().String() },
		Metrics:      collector.Handler(),
	}, relay, logger)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := relay.Start(ctx); err != nil {
		return fmt.Errorf("start relay: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", log.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("received signal, stopping", log.String("signal", sig.String()))
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	// Stop accepting requests before the final cycle drains the queue.
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", log.Err(err))
	}

	if err := relay.Stop(); err != nil {
		return errors.Join(runErr, fmt.Errorf("stop relay: %w", err))
	}
	return runErr
}
