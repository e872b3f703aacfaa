package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Status is the editor state of a component
type Status string

const (
	StatusNone     Status = ""
	StatusSelected Status = "selected"
)

// ActionSpec describes one entry of a component toolbar
type ActionSpec struct {
	Command string // command name run when the action is triggered
	Label   string // text shown on the button
}

// ResizeOptions overrides the default resize behaviour of a component
type ResizeOptions struct {
	Handles   []string // enabled handle ids; empty means all eight
	MinDim    float64  // minimum width/height
	Step      float64  // snapping step for dimensions
	Unit      string   // unit appended to written dimensions ("px" when empty)
	KeyWidth  string   // style property receiving the width
	KeyHeight string   // style property receiving the height
}

// Resizable is either a plain flag or a set of resize options
type Resizable struct {
	Enabled bool
	Options *ResizeOptions
}

// Component is the model object behind a rendered element
type Component struct {
	ID         string
	Type       string
	Name       string
	Icon       string
	Status     Status
	Copyable   bool
	Removable  bool
	Badgable   bool
	Resizable  Resizable
	Toolbar    []ActionSpec
	Style      Style
	Attributes map[string]string
	Components *Collection // children

	collection *Collection // owning collection, nil for detached components
	destroyed  bool
}

// NewComponent creates a component with the editor defaults
func NewComponent(typ string) *Component {
	c := &Component{
		ID:         uuid.NewString(),
		Type:       typ,
		Copyable:   true,
		Removable:  true,
		Badgable:   true,
		Style:      Style{},
		Attributes: make(map[string]string),
	}
	c.Components = NewCollection(c)
	return c
}

// GetName returns the display name, derived from the type when unset
func (c *Component) GetName() string {
	if c.Name != "" {
		return c.Name
	}
	typ := c.Type
	if typ == "" || typ == "default" {
		typ = "box"
	}
	return strings.ToUpper(typ[:1]) + typ[1:]
}

// IsSelected reports whether the component is the current selection
func (c *Component) IsSelected() bool {
	return c != nil && c.Status == StatusSelected
}

// IsResizable reports whether the component accepts resize sessions
func (c *Component) IsResizable() bool {
	return c.Resizable.Enabled || c.Resizable.Options != nil
}

// Collection returns the collection the component belongs to
func (c *Component) Collection() *Collection {
	return c.collection
}

// Parent returns the component owning this component's collection
func (c *Component) Parent() *Component {
	if c.collection == nil {
		return nil
	}
	return c.collection.parent
}

// IsDestroyed reports whether Destroy was called
func (c *Component) IsDestroyed() bool {
	return c.destroyed
}

// Destroy detaches the component from its collection
func (c *Component) Destroy() {
	if c.destroyed {
		return
	}
	if c.collection != nil {
		c.collection.Remove(c)
	}
	c.destroyed = true
}

// Clone returns a deep copy with fresh ids and a cleared status
func (c *Component) Clone() *Component {
	clone := &Component{
		ID:         uuid.NewString(),
		Type:       c.Type,
		Name:       c.Name,
		Icon:       c.Icon,
		Copyable:   c.Copyable,
		Removable:  c.Removable,
		Badgable:   c.Badgable,
		Resizable:  c.Resizable,
		Toolbar:    append([]ActionSpec(nil), c.Toolbar...),
		Style:      c.Style.Clone(),
		Attributes: make(map[string]string, len(c.Attributes)),
	}
	if c.Resizable.Options != nil {
		opts := *c.Resizable.Options
		opts.Handles = append([]string(nil), opts.Handles...)
		clone.Resizable.Options = &opts
	}
	for k, v := range c.Attributes {
		clone.Attributes[k] = v
	}
	// the element id must stay unique
	delete(clone.Attributes, "id")
	clone.Components = NewCollection(clone)
	if c.Components != nil {
		for _, child := range c.Components.All() {
			clone.Components.Add(child.Clone(), -1)
		}
	}
	return clone
}

// Walk calls fn for the component and all of its descendants, depth first
func (c *Component) Walk(fn func(*Component)) {
	fn(c)
	if c.Components == nil {
		return
	}
	for _, child := range c.Components.All() {
		child.Walk(fn)
	}
}

// CollectionObserver is notified about membership changes
type CollectionObserver interface {
	ComponentAdded(c *Component, index int)
	ComponentRemoved(c *Component)
}

// Collection is an ordered list of sibling components
type Collection struct {
	parent   *Component
	items    []*Component
	observer CollectionObserver
}

// NewCollection creates an empty collection owned by parent
func NewCollection(parent *Component) *Collection {
	return &Collection{parent: parent}
}

// Observe sets the observer for this collection and every nested one
func (l *Collection) Observe(o CollectionObserver) {
	l.observer = o
	for _, c := range l.items {
		c.Components.Observe(o)
	}
}

// Len returns the number of components
func (l *Collection) Len() int {
	return len(l.items)
}

// At returns the component at index i, or nil when out of range
func (l *Collection) At(i int) *Component {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// All returns a copy of the components in order
func (l *Collection) All() []*Component {
	return append([]*Component(nil), l.items...)
}

// IndexOf returns the position of c or -1
func (l *Collection) IndexOf(c *Component) int {
	for i, item := range l.items {
		if item == c {
			return i
		}
	}
	return -1
}

// Add inserts c at index at; a negative or out of range index appends
func (l *Collection) Add(c *Component, at int) int {
	if c.collection != nil {
		c.collection.Remove(c)
	}
	if at < 0 || at > len(l.items) {
		at = len(l.items)
	}
	l.items = append(l.items, nil)
	copy(l.items[at+1:], l.items[at:])
	l.items[at] = c
	c.collection = l
	c.destroyed = false
	if c.Components == nil {
		c.Components = NewCollection(c)
	}
	c.Components.Observe(l.observer)
	if l.observer != nil {
		l.observer.ComponentAdded(c, at)
	}
	return at
}

// Remove takes c out of the collection
func (l *Collection) Remove(c *Component) bool {
	i := l.IndexOf(c)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	c.collection = nil
	if l.observer != nil {
		l.observer.ComponentRemoved(c)
	}
	return true
}
