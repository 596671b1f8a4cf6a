package shiprelay_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bft-labs/shiprelay/pkg/shiprelay"
)

// testLogger captures log messages.
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func newTestLogger() *testLogger { return &testLogger{} }

func (l *testLogger) Debug(msg string, fields ...shiprelay.LogField) { l.log("DEBUG", msg) }
func (l *testLogger) Info(msg string, fields ...shiprelay.LogField)  { l.log("INFO", msg) }
func (l *testLogger) Warn(msg string, fields ...shiprelay.LogField)  { l.log("WARN", msg) }
func (l *testLogger) Error(msg string, fields ...shiprelay.LogField) { l.log("ERROR", msg) }

func (l *testLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("[%s] %s", level, msg))
}

func (l *testLogger) Contains(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if strings.Contains(m, s) {
			return true
		}
	}
	return false
}

// stubGateway resolves "<account>-<n>" to "order-<n>" unless the reference
// is listed in missing.
type stubGateway struct {
	mu      sync.Mutex
	missing map[string]bool
	submits map[string][]shiprelay.ResolvedShipment
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		missing: map[string]bool{},
		submits: map[string][]shiprelay.ResolvedShipment{},
	}
}

func (g *stubGateway) ResolveOrder(ctx context.Context, account shiprelay.Account, ref string) (string, error) {
	if g.missing[ref] {
		return "", errors.New("order not found")
	}
	_, n, _ := strings.Cut(ref, "-")
	return "order-" + n, nil
}

func (g *stubGateway) SubmitShipments(ctx context.Context, account shiprelay.Account, shipments []shiprelay.ResolvedShipment) (json.RawMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submits[account.ID] = append(g.submits[account.ID], shipments...)
	return json.RawMessage(`{"status":"success"}`), nil
}

func (g *stubGateway) Submitted(accountID string) []shiprelay.ResolvedShipment {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]shiprelay.ResolvedShipment(nil), g.submits[accountID]...)
}

// eventTracker records relay events.
type eventTracker struct {
	shiprelay.BaseEventHandler
	mu           sync.Mutex
	stateChanges []shiprelay.StateChangeEvent
	enqueues     []shiprelay.EnqueueEvent
	cycles       []shiprelay.CycleEvent
}

func (e *eventTracker) OnStateChange(event shiprelay.StateChangeEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stateChanges = append(e.stateChanges, event)
}

func (e *eventTracker) OnEnqueue(event shiprelay.EnqueueEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enqueues = append(e.enqueues, event)
}

func (e *eventTracker) OnCycleComplete(event shiprelay.CycleEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cycles = append(e.cycles, event)
}

func (e *eventTracker) Cycles() []shiprelay.CycleEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]shiprelay.CycleEvent(nil), e.cycles...)
}

func (e *eventTracker) StateChanges() []shiprelay.StateChangeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]shiprelay.StateChangeEvent(nil), e.stateChanges...)
}

// trackingPlugin records initialization and shutdown order.
type trackingPlugin struct {
	shiprelay.BasePlugin
	name          string
	initOrder     *[]string
	shutdownOrder *[]string
	initError     error
	shutdownError error
	cfg           shiprelay.PluginConfig
}

func (p *trackingPlugin) Name() string { return p.name }

func (p *trackingPlugin) Initialize(ctx context.Context, cfg shiprelay.PluginConfig) error {
	if p.initError != nil {
		return p.initError
	}
	p.cfg = cfg
	*p.initOrder = append(*p.initOrder, p.name)
	return nil
}

func (p *trackingPlugin) Shutdown(ctx context.Context) error {
	*p.shutdownOrder = append(*p.shutdownOrder, p.name)
	return p.shutdownError
}

func testAccounts() []shiprelay.Account {
	return []shiprelay.Account{
		{ID: "21633", Credential: "k1", DisplayName: "Amentum Inventory"},
		{ID: "40348", Credential: "k2", DisplayName: "Amentum Safety"},
	}
}

func fastConfig() shiprelay.Config {
	return shiprelay.Config{
		CycleInterval:   20 * time.Millisecond,
		HTTPTimeout:     time.Second,
		ShutdownTimeout: 2 * time.Second,
	}
}

func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
