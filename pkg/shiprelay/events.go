package shiprelay

import "github.com/bft-labs/shiprelay/internal/app"

// StateChangeEvent is emitted on every lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EnqueueEvent is emitted after events are added to the queue.
type EnqueueEvent struct {
	// Count is the number of events added.
	Count int
	// QueueDepth is the queue length after the append.
	QueueDepth int
}

// CycleEvent is emitted after a non-empty dispatch cycle.
type CycleEvent struct {
	Result CycleResult
}

// EventHandler receives relay notifications. Methods are called
// synchronously and must be safe for concurrent use.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnEnqueue(event EnqueueEvent)
	OnCycleComplete(event CycleEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to
// override only the methods you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnEnqueue(EnqueueEvent)         {}
func (BaseEventHandler) OnCycleComplete(CycleEvent)     {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnCycleComplete(result CycleResult) {
	if e.handler == nil {
		return
	}
	e.handler.OnCycleComplete(CycleEvent{Result: result})
}

func (e *eventEmitterWrapper) onEnqueue(count, depth int) {
	if e.handler == nil {
		return
	}
	e.handler.OnEnqueue(EnqueueEvent{Count: count, QueueDepth: depth})
}
