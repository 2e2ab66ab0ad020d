// Package eventsink provides the event sink: a method accepting one
// event at a time, with several composable implementations — an
// in-memory buffer for post-hoc verification, a structured logger, a
// Kafka producer, and a write-only audit journal.
package eventsink

import (
	"sync"

	"matchcore/domain/event"
)

// MemorySink buffers every published event into an ordered slice, for
// post-hoc verification in tests.
type MemorySink struct {
	mu     sync.Mutex
	events []event.Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (m *MemorySink) Publish(e event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

// Events returns a snapshot of everything published so far, in
// publish order.
func (m *MemorySink) Events() []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MemorySink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
