package editor

import (
	"maps"

	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
)

type styleChange struct {
	component     *domain.Component
	before, after domain.Style
}

// UndoManager keeps the history of committed style changes
type UndoManager struct {
	bus  eventbus.EventBus
	undo []styleChange
	redo []styleChange
}

// NewUndoManager creates an empty history
func NewUndoManager(bus eventbus.EventBus) *UndoManager {
	return &UndoManager{bus: bus}
}

// Record pushes a change and drops the redo stack; no-op changes are ignored
func (u *UndoManager) Record(c *domain.Component, before, after domain.Style) {
	if maps.Equal(before, after) {
		return
	}
	u.undo = append(u.undo, styleChange{component: c, before: before.Clone(), after: after.Clone()})
	u.redo = nil
}

// CanUndo reports whether there is something to undo
func (u *UndoManager) CanUndo() bool { return len(u.undo) > 0 }

// CanRedo reports whether there is something to redo
func (u *UndoManager) CanRedo() bool { return len(u.redo) > 0 }

// Undo reverts the last change
func (u *UndoManager) Undo() bool {
	if len(u.undo) == 0 {
		return false
	}
	ch := u.undo[len(u.undo)-1]
	u.undo = u.undo[:len(u.undo)-1]
	u.redo = append(u.redo, ch)
	u.apply(ch.component, ch.before, false)
	return true
}

// Redo reapplies the last undone change
func (u *UndoManager) Redo() bool {
	if len(u.redo) == 0 {
		return false
	}
	ch := u.redo[len(u.redo)-1]
	u.redo = u.redo[:len(u.redo)-1]
	u.undo = append(u.undo, ch)
	u.apply(ch.component, ch.after, true)
	return true
}

func (u *UndoManager) apply(c *domain.Component, style domain.Style, redo bool) {
	c.Style = style.Clone()
	u.bus.Publish(eventbus.HistoryChangedEvent{Component: c, Redo: redo})
	u.bus.Publish(eventbus.ComponentUpdatedEvent{Component: c})
}
