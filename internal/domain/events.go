package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged    EventType = "SelectionChanged"
	EventComponentUpdated    EventType = "ComponentUpdated"
	EventComponentAdded      EventType = "ComponentAdded"
	EventComponentRemoved    EventType = "ComponentRemoved"
	EventCanvasOffsetChanged EventType = "CanvasOffsetChanged"
	EventTargetStyleUpdated  EventType = "TargetStyleUpdated"
	EventStyleChanged        EventType = "StyleChanged"
	EventHistoryChanged      EventType = "HistoryChanged"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted when the selected component changes
type SelectionChangedEvent struct {
	Previous *Component
	Current  *Component // nil when the selection was cleared
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ComponentUpdatedEvent is emitted when a component changes outside of a drag
type ComponentUpdatedEvent struct {
	Component *Component
}

func (e ComponentUpdatedEvent) Type() EventType { return EventComponentUpdated }

// ComponentAddedEvent is emitted when a component joins a collection
type ComponentAddedEvent struct {
	Component *Component
	Index     int
}

func (e ComponentAddedEvent) Type() EventType { return EventComponentAdded }

// ComponentRemovedEvent is emitted when a component leaves its collection
type ComponentRemovedEvent struct {
	Component *Component
}

func (e ComponentRemovedEvent) Type() EventType { return EventComponentRemoved }

// CanvasOffsetChangedEvent is emitted when positioned overlays must follow a layout change
type CanvasOffsetChangedEvent struct{}

func (e CanvasOffsetChangedEvent) Type() EventType { return EventCanvasOffsetChanged }

// TargetStyleUpdatedEvent is emitted after every intermediate resize write
type TargetStyleUpdatedEvent struct {
	Component *Component
}

func (e TargetStyleUpdatedEvent) Type() EventType { return EventTargetStyleUpdated }

// StyleChangedEvent is emitted when a style change is committed
type StyleChangedEvent struct {
	Component *Component
	Style     Style
}

func (e StyleChangedEvent) Type() EventType { return EventStyleChanged }

// HistoryChangedEvent is emitted after an undo or redo was applied
type HistoryChangedEvent struct {
	Component *Component
	Redo      bool
}

func (e HistoryChangedEvent) Type() EventType { return EventHistoryChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
