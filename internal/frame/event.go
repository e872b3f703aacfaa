package frame

import "framegrip/internal/geom"

// EventType names a document or window event
type EventType string

const (
	PointerOver EventType = "pointerover"
	PointerOut  EventType = "pointerout"
	Click       EventType = "click"
	Scroll      EventType = "scroll"
	KeyDown     EventType = "keydown"
)

// Key codes recognised by the editor
const (
	KeyCodeBackspace = 8
	KeyCodeDelete    = 46
)

// Event is dispatched to listeners registered on a Target
type Event interface {
	EventType() EventType
	StopPropagation()
	PropagationStopped() bool
}

type baseEvent struct {
	typ     EventType
	stopped bool
}

func (e *baseEvent) EventType() EventType     { return e.typ }
func (e *baseEvent) StopPropagation()         { e.stopped = true }
func (e *baseEvent) PropagationStopped() bool { return e.stopped }

// PointerEvent is a pointer event aimed at a rendered node
type PointerEvent struct {
	baseEvent
	Target Node
	Point  geom.Point // frame content coordinates
}

// NewPointerEvent creates a pointer event of the given type
func NewPointerEvent(typ EventType, target Node, pt geom.Point) *PointerEvent {
	return &PointerEvent{baseEvent: baseEvent{typ: typ}, Target: target, Point: pt}
}

// ScrollEvent reports the frame scroll position after a scroll
type ScrollEvent struct {
	baseEvent
	Offset geom.Point
}

// NewScrollEvent creates a scroll event
func NewScrollEvent(offset geom.Point) *ScrollEvent {
	return &ScrollEvent{baseEvent: baseEvent{typ: Scroll}, Offset: offset}
}

// KeyEvent is a keydown inside the frame window
type KeyEvent struct {
	baseEvent
	Key       string // normalised key name, e.g. "delete", "ctrl+c"
	Code      int
	prevented bool
}

// NewKeyEvent creates a keydown event
func NewKeyEvent(key string, code int) *KeyEvent {
	return &KeyEvent{baseEvent: baseEvent{typ: KeyDown}, Key: key, Code: code}
}

// PreventDefault suppresses the browser's default action
func (e *KeyEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called
func (e *KeyEvent) DefaultPrevented() bool { return e.prevented }

// IsDelete reports whether the key removes content (Backspace or Delete)
func (e *KeyEvent) IsDelete() bool {
	if e.Code == KeyCodeBackspace || e.Code == KeyCodeDelete {
		return true
	}
	return e.Key == "backspace" || e.Key == "delete"
}
