// Package selector is the selection state machine of the editor canvas.
//
// It listens to pointer and keyboard events on the embedded document and to
// selection and layout notifications on the bus, and keeps the hover
// decorations, the fixed offset viewer, the toolbar and the resize grips in
// sync with the current hover and selection.
package selector

import (
	"go.uber.org/zap"

	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
	"framegrip/internal/frame"
	"framegrip/internal/overlay"
	"framegrip/internal/resize"
	"framegrip/internal/toolbar"
)

const (
	copyKeys  = "⌘+c, ctrl+c"
	pasteKeys = "⌘+v, ctrl+v"
)

// Editor is the model layer owning the selection
type Editor interface {
	Select(model *domain.Component)
	Selected() *domain.Component
	Remove(model *domain.Component)
}

// Coordinates is the coordinate provider used by every overlay
type Coordinates interface {
	frame.Coordinates
	Scale() float64
}

// Shortcuts binds global key combinations
type Shortcuts interface {
	Bind(keys string, fn func())
	Unbind(keys string)
}

// Deps are the collaborators of a Selector
type Deps struct {
	Bus       eventbus.EventBus
	Document  frame.Document
	Resolver  frame.Resolver
	Coords    Coordinates
	Editor    Editor
	Styles    domain.StyleSource
	Shortcuts Shortcuts // optional
	Logger    *zap.Logger
}

// Options mirror the editor configuration
type Options struct {
	CopyPaste   bool
	ShowToolbar bool
	StylePrefix string
	BadgeLabel  overlay.LabelFunc
	Measure     overlay.Measurer
	ToolbarView toolbar.ViewFactory
	ResizeHooks func(model *domain.Component) resize.Hooks
}

// State is a snapshot of the selection state
type State struct {
	Enabled   bool
	Selected  *domain.Component
	Hovered   frame.Node
	Clipboard *domain.Component
	Dragging  bool
}

// Selector is the selection state machine
type Selector struct {
	deps Deps
	opts Options

	overlays *overlay.Renderer
	toolbar  *toolbar.Controller
	resize   *resize.Controller

	enabled     bool
	unsubscribe []func()
	adjScroll   bool
	showOffsets bool
	hovered     frame.Node
	clipboard   *domain.Component

	logger *zap.Logger
}

// New wires a disabled selector
func New(deps Deps, opts Options) *Selector {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &Selector{
		deps:        deps,
		opts:        opts,
		showOffsets: true,
		logger:      deps.Logger.Named("selector"),
	}

	ropts := []overlay.Option{overlay.WithLogger(deps.Logger)}
	if opts.BadgeLabel != nil {
		ropts = append(ropts, overlay.WithLabel(opts.BadgeLabel))
	}
	if opts.Measure != nil {
		ropts = append(ropts, overlay.WithMeasurer(opts.Measure))
	}
	s.overlays = overlay.NewRenderer(deps.Coords, ropts...)

	s.toolbar = toolbar.NewController(toolbar.Config{
		Enabled: opts.ShowToolbar,
		NewView: opts.ToolbarView,
		Measure: opts.Measure,
	}, deps.Coords, deps.Resolver, deps.Logger)

	s.resize = resize.NewController(resize.Config{
		StylePrefix: opts.StylePrefix,
		Suppress:    func(on bool) { s.showOffsets = !on },
		ModelHooks:  opts.ResizeHooks,
	}, deps.Bus, deps.Coords, deps.Styles, deps.Document, deps.Logger)

	return s
}

// Overlays returns the overlay renderer
func (s *Selector) Overlays() *overlay.Renderer { return s.overlays }

// Toolbar returns the toolbar controller
func (s *Selector) Toolbar() *toolbar.Controller { return s.toolbar }

// Resize returns the resize controller
func (s *Selector) Resize() *resize.Controller { return s.resize }

// Enabled reports whether the selector is running
func (s *Selector) Enabled() bool { return s.enabled }

// State returns a snapshot of the selection state
func (s *Selector) State() State {
	st := State{
		Enabled:   s.enabled,
		Selected:  s.deps.Editor.Selected(),
		Hovered:   s.hovered,
		Clipboard: s.clipboard,
	}
	if r := s.resize.Resizer(); r != nil {
		st.Dragging = r.Active()
	}
	return st
}

// Run activates the selector
func (s *Selector) Run() {
	s.Enable()
}

// Enable subscribes to the document and the bus. Calling it while enabled
// does nothing.
func (s *Selector) Enable() {
	if s.enabled {
		return
	}
	s.enabled = true
	s.adjScroll = false
	s.showOffsets = true
	s.hovered = nil
	s.clipboard = nil

	body := s.deps.Document.Body()
	win := s.deps.Document.Window()
	bus := s.deps.Bus

	s.unsubscribe = append(s.unsubscribe,
		body.AddEventListener(frame.PointerOver, func(ev frame.Event) {
			if e, ok := ev.(*frame.PointerEvent); ok {
				e.StopPropagation()
				s.OnHover(e.Target)
			}
		}),
		body.AddEventListener(frame.PointerOut, func(ev frame.Event) {
			ev.StopPropagation()
			s.OnOut()
		}),
		body.AddEventListener(frame.Click, func(ev frame.Event) {
			if e, ok := ev.(*frame.PointerEvent); ok {
				e.StopPropagation()
				s.OnClick(e.Target)
			}
		}),
		win.AddEventListener(frame.Scroll, func(frame.Event) {
			s.OnFrameScroll()
		}),
		win.AddEventListener(frame.KeyDown, func(ev frame.Event) {
			if e, ok := ev.(*frame.KeyEvent); ok {
				s.OnKeyPress(e)
			}
		}),
		bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SelectionChangedEvent); ok {
				s.onSelect(ev.Current)
			}
		}),
		bus.Subscribe(eventbus.EventComponentUpdated, func(eventbus.DomainEvent) {
			s.UpdateAttached()
		}),
		bus.Subscribe(eventbus.EventCanvasOffsetChanged, func(eventbus.DomainEvent) {
			s.UpdateAttached()
		}),
		bus.Subscribe(eventbus.EventSelectionChanged, func(eventbus.DomainEvent) {
			s.toolbar.Update(s.deps.Editor.Selected())
		}),
		bus.Subscribe(eventbus.EventComponentRemoved, func(eventbus.DomainEvent) {
			s.dropStaleHover()
		}),
		s.resize.Subscribe(),
	)
	s.toggleClipboard(s.opts.CopyPaste)
	s.logger.Debug("enabled", zap.Bool("copyPaste", s.opts.CopyPaste))
}

// Stop reverses Enable and clears the selection and every overlay
func (s *Selector) Stop() {
	if !s.enabled {
		return
	}
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	s.unsubscribe = nil

	if sel := s.deps.Editor.Selected(); sel != nil {
		sel.Status = domain.StatusNone
	}
	s.deps.Editor.Select(nil)
	s.toggleClipboard(false)
	s.resize.Stop()
	s.overlays.HideAll()
	s.toolbar.Hide()

	s.enabled = false
	s.hovered = nil
	s.clipboard = nil
	s.showOffsets = true
	s.logger.Debug("stopped")
}

func (s *Selector) toggleClipboard(on bool) {
	if s.deps.Shortcuts == nil {
		return
	}
	if on {
		s.deps.Shortcuts.Bind(copyKeys, s.CopyComp)
		s.deps.Shortcuts.Bind(pasteKeys, s.PasteComp)
		return
	}
	s.deps.Shortcuts.Unbind(copyKeys)
	s.deps.Shortcuts.Unbind(pasteKeys)
}

func (s *Selector) target(n frame.Node) overlay.Target {
	return overlay.Target{
		Model: s.deps.Resolver.ResolveModel(n),
		Box:   s.deps.Coords.BoxOf(n),
	}
}

func (s *Selector) suppressed() bool {
	return !s.showOffsets
}

// OnHover decorates the node under the pointer
func (s *Selector) OnHover(n frame.Node) {
	if !s.adjScroll {
		s.adjScroll = true
		s.OnFrameScroll()
		s.UpdateAttached()
	}

	s.hovered = n
	t := s.target(n)
	s.overlays.ShowBadge(t, s.suppressed())
	s.overlays.ShowHighlighter(t, s.suppressed())
	s.overlays.ShowOffsetViewer(t, overlay.ModeHover, s.suppressed())
}

// OnOut hides the hover decorations
func (s *Selector) OnOut() {
	s.hovered = nil
	s.overlays.HideBadge()
	s.overlays.HideHighlighter()
	s.overlays.HideOffsetViewer(overlay.ModeHover)
}

// OnClick selects the model rendered by n
func (s *Selector) OnClick(n frame.Node) {
	if model := s.deps.Resolver.ResolveModel(n); model != nil {
		s.deps.Editor.Select(model)
	}
}

// onSelect switches the selected model to the fixed presentation
func (s *Selector) onSelect(model *domain.Component) {
	if model == nil {
		s.resize.Stop()
		s.overlays.HideOffsetViewer(overlay.ModeFixed)
		return
	}

	n := s.deps.Resolver.NodeOf(model)
	if n != nil {
		s.overlays.ShowOffsetViewer(s.target(n), overlay.ModeFixed, false)
	} else {
		s.overlays.HideOffsetViewer(overlay.ModeFixed)
	}
	s.overlays.HideOffsetViewer(overlay.ModeHover)
	s.overlays.HideHighlighter()
	s.overlays.HideBadge()
	s.resize.InitResize(model, n)
}

// OnKeyPress removes the selected component on Delete or Backspace, unless
// focus is inside an editable element
func (s *Selector) OnKeyPress(e *frame.KeyEvent) {
	if !e.IsDelete() {
		return
	}
	focused := s.deps.Document.ActiveElementEditable()
	if !focused {
		e.PreventDefault()
	}

	comp := s.deps.Editor.Selected()
	if comp == nil || focused || !comp.Removable {
		return
	}
	s.logger.Debug("removing component", zap.String("id", comp.ID))
	comp.Status = domain.StatusNone
	s.deps.Editor.Remove(comp)
	s.overlays.HideBadge()
	s.overlays.HideHighlighter()
	s.dropStaleHover()
	s.deps.Editor.Select(nil)
}

// dropStaleHover clears the hover state when the hovered node lost its model
func (s *Selector) dropStaleHover() {
	if s.hovered != nil && s.deps.Resolver.ResolveModel(s.hovered) == nil {
		s.OnOut()
	}
}

// OnFrameScroll repositions everything attached to the hovered node and the
// selection
func (s *Selector) OnFrameScroll() {
	s.dropStaleHover()
	if s.hovered != nil {
		t := s.target(s.hovered)
		s.overlays.ShowBadge(t, s.suppressed())
		s.overlays.ShowHighlighter(t, s.suppressed())
		s.overlays.ShowOffsetViewer(t, overlay.ModeHover, s.suppressed())
	}
	if s.deps.Editor.Selected() != nil {
		s.UpdateAttached()
	}
}

// UpdateAttached keeps the toolbar, the fixed offset viewer and the grips on
// the selected element
func (s *Selector) UpdateAttached() {
	model := s.deps.Editor.Selected()
	if model == nil {
		return
	}
	n := s.deps.Resolver.NodeOf(model)
	if n == nil {
		return
	}
	s.toolbar.UpdatePos(n)
	s.overlays.ShowOffsetViewer(s.target(n), overlay.ModeFixed, false)
	if r := s.resize.Resizer(); r != nil {
		r.UpdateRect()
	}
}

// CopyComp puts the selected component on the clipboard if it is copyable
func (s *Selector) CopyComp() {
	if sel := s.deps.Editor.Selected(); sel != nil && sel.Copyable {
		s.clipboard = sel
	}
}

// PasteComp inserts a clone of the clipboard right after the selection
func (s *Selector) PasteComp() {
	sel := s.deps.Editor.Selected()
	if s.clipboard == nil || sel == nil || sel.Collection() == nil {
		return
	}
	coll := sel.Collection()
	clone := s.clipboard.Clone()
	coll.Add(clone, coll.IndexOf(sel)+1)
	s.logger.Debug("pasted", zap.String("id", clone.ID))
}
