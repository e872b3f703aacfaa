package eventbus

import (
	"sync"

	"go.uber.org/zap"

	"framegrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSelectionChanged    = domain.EventSelectionChanged
	EventComponentUpdated    = domain.EventComponentUpdated
	EventComponentAdded      = domain.EventComponentAdded
	EventComponentRemoved    = domain.EventComponentRemoved
	EventCanvasOffsetChanged = domain.EventCanvasOffsetChanged
	EventTargetStyleUpdated  = domain.EventTargetStyleUpdated
	EventStyleChanged        = domain.EventStyleChanged
	EventHistoryChanged      = domain.EventHistoryChanged
	EventConfigLoaded        = domain.EventConfigLoaded
	EventConfigSaved         = domain.EventConfigSaved
)

// Re-export domain event types
type SelectionChangedEvent = domain.SelectionChangedEvent
type ComponentUpdatedEvent = domain.ComponentUpdatedEvent
type ComponentAddedEvent = domain.ComponentAddedEvent
type ComponentRemovedEvent = domain.ComponentRemovedEvent
type CanvasOffsetChangedEvent = domain.CanvasOffsetChangedEvent
type TargetStyleUpdatedEvent = domain.TargetStyleUpdatedEvent
type StyleChangedEvent = domain.StyleChangedEvent
type HistoryChangedEvent = domain.HistoryChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Handlers run synchronously on the publishing goroutine, in subscription
// order, so every notification is fully processed before Publish returns.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	logger   *zap.Logger
}

// New creates a new event bus
func New(logger *zap.Logger) EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &bus{
		handlers: make(map[EventType][]subscription),
		logger:   logger.Named("eventbus"),
	}
}

// Publish delivers an event to all current subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventCanvasOffsetChanged, EventTargetStyleUpdated:
	default:
		b.logger.Debug("publishing event", zap.String("type", string(event.Type())))
	}

	// Copy so handlers may subscribe or unsubscribe while we iterate
	b.mu.RLock()
	handlers := make([]subscription, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range handlers {
		s.handler(event)
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function; calling it more than once is harmless
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		handlers := b.handlers[eventType]
		for i, s := range handlers {
			if s.id == id {
				b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
				break
			}
		}
	}
}

// Count returns the number of handlers subscribed to eventType on bus b.
// Buses not created by New report zero.
func Count(b EventBus, eventType EventType) int {
	impl, ok := b.(*bus)
	if !ok {
		return 0
	}
	impl.mu.RLock()
	defer impl.mu.RUnlock()
	return len(impl.handlers[eventType])
}
