package app

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/bft-labs/shiprelay/internal/domain"
	"github.com/bft-labs/shiprelay/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// mapDirectory is an in-memory AccountDirectory.
type mapDirectory map[string]domain.Account

func (m mapDirectory) Lookup(id string) (domain.Account, bool) {
	a, ok := m[id]
	return a, ok
}

func testDirectory() mapDirectory {
	return mapDirectory{
		"21633": {ID: "21633", Credential: "key-21633", DisplayName: "Amentum Inventory"},
		"40348": {ID: "40348", Credential: "key-40348", DisplayName: "Amentum Safety"},
		"12803": {ID: "12803", DisplayName: "ASE"},
	}
}

type submitCall struct {
	account   domain.Account
	shipments []domain.ResolvedShipment
}

// fakeGateway records calls and tracks resolve concurrency.
type fakeGateway struct {
	// resolve overrides the default "order-<reference>" answer.
	resolve func(ctx context.Context, account domain.Account, ref string) (string, error)
	// submit overrides the default success response.
	submit func(account domain.Account, shipments []domain.ResolvedShipment) (json.RawMessage, error)

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	resolves    atomic.Int32

	mu      sync.Mutex
	submits []submitCall
}

func (g *fakeGateway) ResolveOrder(ctx context.Context, account domain.Account, ref string) (string, error) {
	g.resolves.Add(1)
	n := g.inFlight.Add(1)
	defer g.inFlight.Add(-1)
	for {
		max := g.maxInFlight.Load()
		if n <= max || g.maxInFlight.CompareAndSwap(max, n) {
			break
		}
	}

	if g.resolve != nil {
		return g.resolve(ctx, account, ref)
	}
	return "order-" + ref, nil
}

func (g *fakeGateway) SubmitShipments(ctx context.Context, account domain.Account, shipments []domain.ResolvedShipment) (json.RawMessage, error) {
	g.mu.Lock()
	g.submits = append(g.submits, submitCall{account: account, shipments: append([]domain.ResolvedShipment(nil), shipments...)})
	g.mu.Unlock()

	if g.submit != nil {
		return g.submit(account, shipments)
	}
	return json.RawMessage(`{"status":"success"}`), nil
}

func (g *fakeGateway) Submits() []submitCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]submitCall(nil), g.submits...)
}

func (g *fakeGateway) submitFor(accountID string) (submitCall, bool) {
	for _, s := range g.Submits() {
		if s.account.ID == accountID {
			return s, true
		}
	}
	return submitCall{}, false
}

// recordingEmitter captures completed cycles.
type recordingEmitter struct {
	mu      sync.Mutex
	results []domain.CycleResult
}

func (r *recordingEmitter) OnCycleComplete(result domain.CycleResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *recordingEmitter) Results() []domain.CycleResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.CycleResult(nil), r.results...)
}

func event(ref string) domain.ShipmentEvent {
	return domain.ShipmentEvent{
		ExternalReference: ref,
		TrackingNumber:    "TRK-" + ref,
		CarrierCode:       "UPS",
		ShipmentMethod:    "Ground",
	}
}
