package editor

import (
	"go.uber.org/zap"

	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
)

// Editor is the model layer around the component tree. It owns the
// selection and publishes tree and selection changes on the bus.
type Editor struct {
	bus      eventbus.EventBus
	wrapper  *domain.Component
	selected *domain.Component
	styles   *StyleManager
	undo     *UndoManager
	logger   *zap.Logger
}

// New creates an editor with an empty wrapper component
func New(bus eventbus.EventBus, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Editor{
		bus:     bus,
		wrapper: domain.NewComponent("wrapper"),
		logger:  logger.Named("editor"),
	}
	e.wrapper.Name = "Body"
	e.wrapper.Copyable = false
	e.wrapper.Removable = false
	e.undo = NewUndoManager(bus)
	e.styles = NewStyleManager(bus, e.undo)
	e.wrapper.Components.Observe(e)
	return e
}

// Wrapper returns the root component
func (e *Editor) Wrapper() *domain.Component { return e.wrapper }

// Components returns the top level collection
func (e *Editor) Components() *domain.Collection { return e.wrapper.Components }

// Styles returns the style manager
func (e *Editor) Styles() *StyleManager { return e.styles }

// UndoManager returns the style history
func (e *Editor) UndoManager() *UndoManager { return e.undo }

// Selected returns the selected component, or nil
func (e *Editor) Selected() *domain.Component { return e.selected }

// Select makes model the only selected component; nil clears the selection
func (e *Editor) Select(model *domain.Component) {
	if model == e.selected {
		return
	}
	prev := e.selected
	if prev != nil {
		prev.Status = domain.StatusNone
	}
	if model != nil {
		model.Status = domain.StatusSelected
	}
	e.selected = model

	if model != nil {
		e.logger.Debug("selected", zap.String("id", model.ID), zap.String("name", model.GetName()))
	} else {
		e.logger.Debug("selection cleared")
	}
	e.bus.Publish(eventbus.SelectionChangedEvent{Previous: prev, Current: model})
}

// Remove destroys model and its subtree
func (e *Editor) Remove(model *domain.Component) {
	if model == nil || model == e.wrapper {
		return
	}
	model.Destroy()
}

// Find returns the component with the given id
func (e *Editor) Find(id string) *domain.Component {
	var found *domain.Component
	e.wrapper.Walk(func(c *domain.Component) {
		if found == nil && c.ID == id {
			found = c
		}
	})
	return found
}

// ComponentAdded implements domain.CollectionObserver
func (e *Editor) ComponentAdded(c *domain.Component, index int) {
	e.bus.Publish(eventbus.ComponentAddedEvent{Component: c, Index: index})
}

// ComponentRemoved implements domain.CollectionObserver
func (e *Editor) ComponentRemoved(c *domain.Component) {
	if e.selected != nil && contains(c, e.selected) {
		e.Select(nil)
	}
	e.bus.Publish(eventbus.ComponentRemovedEvent{Component: c})
}

func contains(root, c *domain.Component) bool {
	found := false
	root.Walk(func(x *domain.Component) {
		if x == c {
			found = true
		}
	})
	return found
}
