package frame

import "sync"

// Listener handles an event
type Listener func(Event)

type listenerEntry struct {
	id uint64
	fn Listener
}

// Target keeps event listeners and dispatches events to them in registration order
type Target struct {
	mu        sync.RWMutex
	listeners map[EventType][]listenerEntry
	nextID    uint64
}

// NewTarget creates a target without listeners
func NewTarget() *Target {
	return &Target{listeners: make(map[EventType][]listenerEntry)}
}

// AddEventListener registers fn and returns a function removing it again
func (t *Target) AddEventListener(typ EventType, fn Listener) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.listeners[typ] = append(t.listeners[typ], listenerEntry{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		entries := t.listeners[typ]
		for i, e := range entries {
			if e.id == id {
				t.listeners[typ] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Dispatch runs every listener for the event type exactly once and reports
// whether one of them stopped propagation
func (t *Target) Dispatch(ev Event) bool {
	t.mu.RLock()
	entries := make([]listenerEntry, len(t.listeners[ev.EventType()]))
	copy(entries, t.listeners[ev.EventType()])
	t.mu.RUnlock()

	for _, e := range entries {
		e.fn(ev)
	}
	return ev.PropagationStopped()
}

// ListenerCount returns the number of listeners for typ
func (t *Target) ListenerCount(typ EventType) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners[typ])
}
