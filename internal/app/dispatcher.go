package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/shiprelay/internal/domain"
	"github.com/bft-labs/shiprelay/internal/ports"
)

// Default dispatcher configuration values.
const (
	DefaultConcurrency = 10
	DefaultCallTimeout = 15 * time.Second
)

// DispatcherConfig contains configuration for dispatch cycles.
type DispatcherConfig struct {
	// Concurrency caps the number of in-flight resolve calls per cycle.
	Concurrency int

	// CallTimeout bounds each gateway call. Zero disables the timeout.
	CallTimeout time.Duration
}

// CycleEventEmitter is called after every cycle that drained at least one event.
type CycleEventEmitter interface {
	OnCycleComplete(result domain.CycleResult)
}

// Dispatcher runs dispatch cycles: drain the queue, resolve every event to
// an order with bounded concurrency, group by account and submit one batch
// per account.
type Dispatcher struct {
	config    DispatcherConfig
	queue     *Queue
	directory ports.AccountDirectory
	gateway   ports.OrderGateway
	logger    ports.Logger
	emitter   CycleEventEmitter
	newID     func() string
}

// NewDispatcher creates a dispatcher with the given dependencies.
// emitter may be nil.
func NewDispatcher(
	config DispatcherConfig,
	queue *Queue,
	directory ports.AccountDirectory,
	gateway ports.OrderGateway,
	logger ports.Logger,
	emitter CycleEventEmitter,
) *Dispatcher {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	return &Dispatcher{
		config:    config,
		queue:     queue,
		directory: directory,
		gateway:   gateway,
		logger:    logger,
		emitter:   emitter,
		newID:     uuid.NewString,
	}
}

// RunCycle executes one dispatch cycle. An empty drain returns a zero
// CycleResult without touching the directory or the gateway.
// Failures are recorded in the result; RunCycle never panics.
func (d *Dispatcher) RunCycle(ctx context.Context) domain.CycleResult {
	events := d.queue.Drain()
	if len(events) == 0 {
		return domain.CycleResult{}
	}

	c := &cycle{
		result: domain.CycleResult{
			ID:        d.newID(),
			StartedAt: time.Now(),
			Drained:   len(events),
		},
		batches: make(map[string]*domain.AccountBatch),
	}

	d.logger.Info("cycle started",
		ports.String("cycle_id", c.result.ID),
		ports.Int("drained", len(events)),
	)

	d.resolveAll(ctx, c, events)
	d.submitAll(ctx, c)

	result := c.result
	result.Duration = time.Since(result.StartedAt)

	d.logger.Info("cycle complete",
		ports.String("cycle_id", result.ID),
		ports.Int("drained", result.Drained),
		ports.Int("resolved", result.Resolved),
		ports.Int("failures", len(result.Failures())),
		ports.Int("batches", len(c.order)),
		ports.Duration("duration", result.Duration),
	)

	if d.emitter != nil {
		d.emitter.OnCycleComplete(result)
	}
	return result
}

// resolveAll resolves every event. Per-item failures never cancel siblings,
// so every task returns nil to the group.
func (d *Dispatcher) resolveAll(ctx context.Context, c *cycle, events []domain.ShipmentEvent) {
	g := new(errgroup.Group)
	g.SetLimit(d.config.Concurrency)

	for _, ev := range events {
		ev := ev
		g.Go(func() error {
			d.resolveOne(ctx, c, ev)
			return nil
		})
	}
	_ = g.Wait()
}

func (d *Dispatcher) resolveOne(ctx context.Context, c *cycle, ev domain.ShipmentEvent) {
	var accountID string
	defer func() {
		if r := recover(); r != nil {
			d.recordItemFailure(c, ev, accountID, domain.FailureResolution, fmt.Sprintf("panic: %v", r))
		}
	}()

	accountID, err := domain.ParseAccountID(ev.ExternalReference)
	if err != nil {
		d.recordItemFailure(c, ev, accountID, domain.FailureInvalidAccount, "invalid store ID: "+accountID)
		return
	}

	account, ok := d.directory.Lookup(accountID)
	if !ok {
		d.recordItemFailure(c, ev, accountID, domain.FailureInvalidAccount, "invalid store ID: "+accountID)
		return
	}
	if !account.HasCredential() {
		d.recordItemFailure(c, ev, accountID, domain.FailureMissingCredential, "API key not found for store ID: "+accountID)
		return
	}

	callCtx, cancel := d.callContext(ctx)
	defer cancel()

	orderID, err := d.gateway.ResolveOrder(callCtx, account, ev.ExternalReference)
	if err != nil {
		d.recordItemFailure(c, ev, accountID, domain.ClassifyItemError(err), err.Error())
		return
	}

	d.logger.Debug("order resolved",
		ports.String("cycle_id", c.result.ID),
		ports.String("source_id", ev.ExternalReference),
		ports.String("order_id", orderID),
	)
	c.addResolved(account, ev.Resolve(orderID))
}

// submitAll posts one batch per account, in order of each account's first
// successful resolution. Submissions are independent of each other.
func (d *Dispatcher) submitAll(ctx context.Context, c *cycle) {
	for _, accountID := range c.order {
		d.submitOne(ctx, c, c.batches[accountID])
	}
}

func (d *Dispatcher) submitOne(ctx context.Context, c *cycle, batch *domain.AccountBatch) {
	outcome := domain.Outcome{
		Scope:     domain.ScopeBatch,
		AccountID: batch.Account.ID,
		Shipments: batch.Size(),
	}
	defer func() {
		if r := recover(); r != nil {
			outcome.Kind = domain.FailureSubmission
			outcome.Reason = fmt.Sprintf("panic: %v", r)
			d.logBatchFailure(c, outcome)
			c.record(outcome)
		}
	}()

	callCtx, cancel := d.callContext(ctx)
	defer cancel()

	resp, err := d.gateway.SubmitShipments(callCtx, batch.Account, batch.Shipments)
	if err != nil {
		outcome.Kind = domain.FailureSubmission
		outcome.Reason = err.Error()
		d.logBatchFailure(c, outcome)
		c.record(outcome)
		return
	}

	outcome.Response = resp
	d.logger.Info("batch submitted",
		ports.String("cycle_id", c.result.ID),
		ports.String("account_id", outcome.AccountID),
		ports.String("account", batch.Account.DisplayName),
		ports.Int("shipments", outcome.Shipments),
	)
	c.record(outcome)
}

func (d *Dispatcher) recordItemFailure(c *cycle, ev domain.ShipmentEvent, accountID string, kind domain.FailureKind, reason string) {
	d.logger.Error("shipment failed",
		ports.String("cycle_id", c.result.ID),
		ports.String("kind", kind.String()),
		ports.String("reason", reason),
		ports.String("source_id", ev.ExternalReference),
		ports.String("tracking_number", ev.TrackingNumber),
	)
	c.record(domain.Outcome{
		Scope:     domain.ScopeItem,
		Event:     &ev,
		AccountID: accountID,
		Kind:      kind,
		Reason:    reason,
	})
}

func (d *Dispatcher) logBatchFailure(c *cycle, o domain.Outcome) {
	d.logger.Error("batch submission failed",
		ports.String("cycle_id", c.result.ID),
		ports.String("account_id", o.AccountID),
		ports.Int("shipments", o.Shipments),
		ports.String("reason", o.Reason),
	)
}

func (d *Dispatcher) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.config.CallTimeout > 0 {
		return context.WithTimeout(ctx, d.config.CallTimeout)
	}
	return context.WithCancel(ctx)
}

// cycle is the mutable state of one RunCycle invocation.
type cycle struct {
	mu      sync.Mutex
	result  domain.CycleResult
	batches map[string]*domain.AccountBatch
	order   []string
}

func (c *cycle) record(o domain.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result.Outcomes = append(c.result.Outcomes, o)
}

func (c *cycle) addResolved(account domain.Account, s domain.ResolvedShipment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	batch, ok := c.batches[account.ID]
	if !ok {
		batch = domain.NewAccountBatch(account)
		c.batches[account.ID] = batch
		c.order = append(c.order, account.ID)
	}
	batch.Add(s)
	c.result.Resolved++
}
