package app

import (
	"context"
	"time"

	"github.com/bft-labs/shiprelay/internal/domain"
	"github.com/bft-labs/shiprelay/internal/ports"
)

// Default scheduler configuration values.
const (
	DefaultCycleInterval = 5 * time.Second
	DefaultFlushTimeout  = 30 * time.Second
)

// CycleRunner runs one dispatch cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) domain.CycleResult
}

// SchedulerConfig contains configuration for the cycle loop.
type SchedulerConfig struct {
	Interval time.Duration

	// FlushTimeout bounds the final cycle run on shutdown.
	FlushTimeout time.Duration
}

// Scheduler triggers dispatch cycles on a fixed interval.
//
// Cycles run one at a time on the scheduler goroutine. A tick that fires
// while a cycle is still running is dropped, so the network phases of two
// cycles never overlap.
type Scheduler struct {
	config SchedulerConfig
	runner CycleRunner
	logger ports.Logger
}

// NewScheduler creates a scheduler driving the given runner.
func NewScheduler(config SchedulerConfig, runner CycleRunner, logger ports.Logger) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = DefaultCycleInterval
	}
	if config.FlushTimeout <= 0 {
		config.FlushTimeout = DefaultFlushTimeout
	}
	return &Scheduler{
		config: config,
		runner: runner,
		logger: logger,
	}
}

// Run executes the cycle loop until the context is canceled, then runs one
// final cycle so events accepted before shutdown are attempted.
// Always returns the context's error.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Cycles are detached from ctx; gateway calls carry their own timeouts.
	cycleCtx := context.WithoutCancel(ctx)

	s.logger.Info("scheduler started", ports.Duration("interval", s.config.Interval))

	for {
		select {
		case <-ctx.Done():
			s.flush(cycleCtx)
			return ctx.Err()
		case <-ticker.C:
			s.runner.RunCycle(cycleCtx)
			// Drop the tick buffered while the cycle ran.
			select {
			case <-ticker.C:
			default:
			}
		}
	}
}

func (s *Scheduler) flush(ctx context.Context) {
	flushCtx, cancel := context.WithTimeout(ctx, s.config.FlushTimeout)
	defer cancel()

	result := s.runner.RunCycle(flushCtx)
	if !result.Empty() {
		s.logger.Info("flushed pending shipments on shutdown",
			ports.String("cycle_id", result.ID),
			ports.Int("drained", result.Drained),
		)
	}
}
