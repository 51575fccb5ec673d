package engagement

import (
	"sync"

	"github.com/fitquest-app/fitquest/internal/domain"
)

// Listener receives achievement lifecycle events. Dispatch is synchronous;
// a listener must not trigger another evaluation from inside HandleEvent.
type Listener interface {
	HandleEvent(ev domain.Event)
}

// Bus is a minimal publish/subscribe mechanism for achievement events.
// Listeners are keyed by identity and notified in subscription order.
type Bus struct {
	mu        sync.Mutex
	listeners []Listener
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener. Subscribing the same listener twice is a
// no-op.
func (b *Bus) Subscribe(l Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.listeners {
		if existing == l {
			return
		}
	}
	b.listeners = append(b.listeners, l)
}

// Unsubscribe removes a listener. Unknown listeners are a no-op, not an
// error.
func (b *Bus) Unsubscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.listeners {
		if existing == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish dispatches an event to every listener subscribed at dispatch
// start, in subscription order. A listener added during dispatch does not
// receive the current event.
func (b *Bus) Publish(ev domain.Event) {
	b.mu.Lock()
	snapshot := make([]Listener, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.Unlock()

	for _, l := range snapshot {
		l.HandleEvent(ev)
	}
}

// ─── Queue Listener ─────────────────────────────────────────────────────────

// Queue is a bus listener that buffers events for polling consumers (the UI
// notification endpoint). Drain returns and clears the buffered events.
type Queue struct {
	mu     sync.Mutex
	events []domain.Event
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return &Queue{}
}

// HandleEvent buffers the event.
func (q *Queue) HandleEvent(ev domain.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
}

// Drain returns all buffered events in arrival order and clears the queue.
func (q *Queue) Drain() []domain.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
