package editor

import (
	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
)

// StyleManager hands out writers for the inline style of a component
type StyleManager struct {
	bus  eventbus.EventBus
	undo *UndoManager
}

// NewStyleManager creates a style manager recording commits in undo
func NewStyleManager(bus eventbus.EventBus, undo *UndoManager) *StyleManager {
	return &StyleManager{bus: bus, undo: undo}
}

// StyleWriter implements domain.StyleSource
func (m *StyleManager) StyleWriter(c *domain.Component) domain.StyleWriter {
	return &styleWriter{m: m, c: c, base: c.Style.Clone()}
}

type styleWriter struct {
	m    *StyleManager
	c    *domain.Component
	base domain.Style // style as of the last commit
}

func (w *styleWriter) GetStyle() domain.Style {
	return w.c.Style.Clone()
}

func (w *styleWriter) SetStyle(style domain.Style, opts domain.SetStyleOptions) {
	w.c.Style = style.Clone()
	if !opts.AvoidStore {
		w.OnStyleChanged(style)
	}
}

func (w *styleWriter) OnStyleChanged(style domain.Style) {
	w.m.undo.Record(w.c, w.base, style)
	w.base = style.Clone()
	w.m.bus.Publish(eventbus.StyleChangedEvent{Component: w.c, Style: style.Clone()})
	w.m.bus.Publish(eventbus.ComponentUpdatedEvent{Component: w.c})
}
