// Package coordinator wires the editor, the document and the selection
// state machine into one canvas session and translates host input (pointer
// positions, key names) into frame events.
package coordinator

import (
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"framegrip/internal/commands"
	"framegrip/internal/config"
	"framegrip/internal/document"
	"framegrip/internal/domain"
	"framegrip/internal/editor"
	"framegrip/internal/eventbus"
	"framegrip/internal/frame"
	"framegrip/internal/geom"
	"framegrip/internal/input"
	"framegrip/internal/resize"
	"framegrip/internal/selector"
	"framegrip/internal/toolbar"
)

// ErrNotResizable is returned when a drag is requested without grips
var ErrNotResizable = errors.New("selection is not resizable")

// defaultCanvas is the visible area until the host sets a viewport
var defaultCanvas = geom.Box{Width: 80, Height: 24}

// PressResult tells what a pointer press hit
type PressResult int

const (
	PressNone PressResult = iota
	PressGrip
	PressToolbar
	PressElement
)

// Coordinator manages all canvas services and their interactions
type Coordinator struct {
	// Services
	Editor   *editor.Editor
	Registry *frame.Registry
	Document *document.Document
	Geometry *frame.Geometry
	Selector *selector.Selector
	Keys     *input.Keymap
	Commands *commands.Executor

	// Dependencies
	bus    eventbus.EventBus
	cfg    *config.Config
	logger *zap.Logger

	pointer     *document.Element
	unsubscribe func()
}

// NewCoordinator loads the document from r and starts the selector
func NewCoordinator(bus eventbus.EventBus, cfg *config.Config, r io.Reader, logger *zap.Logger) (*Coordinator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ed := editor.New(bus, logger)
	reg := frame.NewRegistry()
	doc, err := document.Load(r, ed, reg, bus, logger)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		Editor:   ed,
		Registry: reg,
		Document: doc,
		Geometry: frame.NewGeometry(doc, frame.Viewport{Zoom: 1, Canvas: defaultCanvas}),
		Keys:     input.NewKeymap(),
		Commands: commands.NewExecutor(ed, bus, logger),
		bus:      bus,
		cfg:      cfg,
		logger:   logger.Named("coordinator"),
	}
	c.Selector = selector.New(selector.Deps{
		Bus:       bus,
		Document:  doc,
		Resolver:  reg,
		Coords:    c.Geometry,
		Editor:    ed,
		Styles:    ed.Styles(),
		Shortcuts: c.Keys,
		Logger:    logger,
	}, selector.Options{
		CopyPaste:   cfg.Editor.CopyPaste,
		ShowToolbar: cfg.Editor.ShowToolbar,
		StylePrefix: cfg.Editor.StylePrefix,
		BadgeLabel:  config.BadgeLabelFunc(cfg.Editor.BadgeLabel),
	})

	// Removed elements can't stay under the pointer
	c.unsubscribe = bus.Subscribe(eventbus.EventComponentRemoved, func(eventbus.DomainEvent) {
		if c.pointer != nil && reg.ResolveModel(c.pointer) == nil {
			c.Hover(nil)
		}
	})

	c.Selector.Run()
	return c, nil
}

// Close stops the selector and detaches the document
func (c *Coordinator) Close() {
	c.Selector.Stop()
	c.Document.Close()
	c.unsubscribe()
}

// SetViewport places the frame at offset with the given visible size
func (c *Coordinator) SetViewport(offset geom.Point, width, height float64) {
	vp := c.Geometry.Viewport()
	vp.FrameOffset = offset
	vp.Canvas = geom.Box{Top: offset.Y, Left: offset.X, Width: width, Height: height}
	c.Geometry.SetViewport(vp)
	c.Selector.UpdateAttached()
}

// ContentHeight returns the height of the laid out document
func (c *Coordinator) ContentHeight() float64 {
	b, _ := c.Document.LocalBox(c.Document.BodyElement())
	return b.Height
}

// ScrollBy scrolls the frame vertically, clamped to the content, and
// reports whether the position changed
func (c *Coordinator) ScrollBy(dy float64) bool {
	vp := c.Geometry.Viewport()
	maxY := math.Max(0, c.ContentHeight()-vp.Canvas.Height)
	y := math.Min(maxY, math.Max(0, vp.Scroll.Y+dy))
	if y == vp.Scroll.Y {
		return false
	}
	c.Geometry.SetScroll(geom.Point{X: vp.Scroll.X, Y: y})
	c.Document.Window().Dispatch(frame.NewScrollEvent(geom.Point{X: vp.Scroll.X, Y: y}))
	return true
}

// Hover dispatches pointer events for moving onto el; nil leaves the
// current element
func (c *Coordinator) Hover(el *document.Element) {
	if el == c.pointer {
		return
	}
	body := c.Document.Body()
	if c.pointer != nil {
		body.Dispatch(frame.NewPointerEvent(frame.PointerOut, c.pointer, geom.Point{}))
	}
	c.pointer = el
	if el != nil {
		body.Dispatch(frame.NewPointerEvent(frame.PointerOver, el, geom.Point{}))
	}
}

// Click dispatches a click on el. A click on the selected element moves
// text focus into it when it is editable.
func (c *Coordinator) Click(el *document.Element) {
	if el == nil {
		c.Document.Blur()
		return
	}
	if m := c.Registry.ResolveModel(el); m != nil && m.IsSelected() && c.Document.Focus(el) {
		return
	}
	c.Document.Blur()
	c.Document.Body().Dispatch(frame.NewPointerEvent(frame.Click, el, geom.Point{}))
}

// elementAt hit tests a host point
func (c *Coordinator) elementAt(p geom.Point) *document.Element {
	if !c.Geometry.Viewport().Canvas.Contains(p) {
		return nil
	}
	return c.Document.ElementAt(c.Geometry.ToContent(p))
}

// PointerMove handles pointer motion at host point p
func (c *Coordinator) PointerMove(p geom.Point) {
	if r := c.Selector.Resize().Resizer(); r != nil && r.Active() {
		r.Move(p)
		return
	}
	c.Hover(c.elementAt(p))
}

// PointerLeave handles the pointer leaving the canvas
func (c *Coordinator) PointerLeave() {
	c.Hover(nil)
}

// Press handles a primary button press at host point p
func (c *Coordinator) Press(p geom.Point) PressResult {
	if r := c.Selector.Resize().Resizer(); r != nil {
		if h, ok := r.HandleAt(p); ok && r.Start(h, p) {
			return PressGrip
		}
	}

	tb := c.Selector.Toolbar()
	if el := tb.Element(); el.Visible() && el.Box().Contains(p) {
		if view, ok := tb.View().(*toolbar.ButtonsView); ok {
			if b, ok := view.ButtonAt(int(p.X - el.Left)); ok {
				if err := c.Commands.Execute(b.Action.Command); err != nil {
					c.logger.Warn("toolbar action failed", zap.Error(err))
				}
			}
		}
		return PressToolbar
	}

	el := c.elementAt(p)
	c.Click(el)
	if el == nil {
		return PressNone
	}
	return PressElement
}

// Release ends a drag at host point p
func (c *Coordinator) Release(p geom.Point) {
	r := c.Selector.Resize().Resizer()
	if r == nil || !r.Active() {
		return
	}
	r.Move(p)
	r.End()
}

// Dragging reports whether a resize drag is in progress
func (c *Coordinator) Dragging() bool {
	return c.Selector.State().Dragging
}

// DragHandle performs a complete drag of handle h by (dx, dy)
func (c *Coordinator) DragHandle(h resize.Handle, dx, dy float64) error {
	r := c.Selector.Resize().Resizer()
	if r == nil {
		return ErrNotResizable
	}
	for _, g := range r.Grips() {
		if g.Handle != h {
			continue
		}
		if !r.Start(h, g.Point) {
			return fmt.Errorf("cannot start drag on handle %s", h)
		}
		r.Move(g.Point.Add(geom.Point{X: dx, Y: dy}))
		r.End()
		return nil
	}
	return fmt.Errorf("handle %s is not enabled", h)
}

// Key handles a key press by name and reports whether it was consumed
func (c *Coordinator) Key(key string) bool {
	key = input.Normalize(key)
	if c.Keys.Dispatch(key) {
		return true
	}
	switch key {
	case "esc":
		c.Document.Blur()
		return true
	case "delete", "backspace":
		code := frame.KeyCodeDelete
		if key == "backspace" {
			code = frame.KeyCodeBackspace
		}
		ev := frame.NewKeyEvent(key, code)
		c.Document.Window().Dispatch(ev)
		return ev.DefaultPrevented()
	}
	return false
}

// Undo reverts the last committed style change
func (c *Coordinator) Undo() bool { return c.Editor.UndoManager().Undo() }

// Redo reapplies the last undone style change
func (c *Coordinator) Redo() bool { return c.Editor.UndoManager().Redo() }

// Describe names a component for status lines and snapshots
func Describe(m *domain.Component) string {
	if m == nil {
		return ""
	}
	if id := m.Attributes["id"]; id != "" {
		return "#" + id
	}
	return m.GetName()
}
