package app

import (
	"sync"

	"github.com/bft-labs/shiprelay/internal/domain"
)

// Queue is an unbounded, insertion-ordered buffer of pending shipment events.
// The lock is held only for the append or the swap, never across gateway
// calls, so producers are not blocked by a running cycle.
type Queue struct {
	mu     sync.Mutex
	events []domain.ShipmentEvent
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends events preserving their relative order and returns the
// queue depth after the append.
func (q *Queue) Enqueue(events ...domain.ShipmentEvent) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, events...)
	return len(q.events)
}

// Drain atomically removes and returns everything currently queued.
// Events enqueued after the swap belong to the next drain.
func (q *Queue) Drain() []domain.ShipmentEvent {
	q.mu.Lock()
	events := q.events
	q.events = nil
	q.mu.Unlock()

	if events == nil {
		return []domain.ShipmentEvent{}
	}
	return events
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
