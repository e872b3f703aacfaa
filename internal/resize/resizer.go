package resize

import (
	"math"

	"framegrip/internal/domain"
	"framegrip/internal/frame"
	"framegrip/internal/geom"
)

// Handle identifies one of the eight resize grips
type Handle string

const (
	HandleTL Handle = "tl"
	HandleTC Handle = "tc"
	HandleTR Handle = "tr"
	HandleCL Handle = "cl"
	HandleCR Handle = "cr"
	HandleBL Handle = "bl"
	HandleBC Handle = "bc"
	HandleBR Handle = "br"
)

// AllHandles lists every grip, clockwise from the top-left corner
var AllHandles = []Handle{HandleTL, HandleTC, HandleTR, HandleCR, HandleBR, HandleBC, HandleBL, HandleCL}

func (h Handle) left() bool   { return h == HandleTL || h == HandleCL || h == HandleBL }
func (h Handle) right() bool  { return h == HandleTR || h == HandleCR || h == HandleBR }
func (h Handle) top() bool    { return h == HandleTL || h == HandleTC || h == HandleTR }
func (h Handle) bottom() bool { return h == HandleBL || h == HandleBC || h == HandleBR }

// UpdateOptions accompanies every target update
type UpdateOptions struct {
	Store  bool // commit the change instead of a live preview
	Handle Handle
}

// DragSession is the state of one drag, from start to end
type DragSession struct {
	Target *domain.Component
	Node   frame.Node
	Writer domain.StyleWriter
	Handle Handle

	OnlyWidth  bool
	OnlyHeight bool

	// Style is the snapshot mutated by the drag
	Style domain.Style

	SuppressOffsets bool

	StartBox   geom.Box
	Rect       geom.Box
	StartPoint geom.Point
	Point      geom.Point
}

// Hooks are the callbacks of a drag interaction
type Hooks struct {
	OnStart func(s *DragSession)
	OnMove  func(s *DragSession)
	OnEnd   func(s *DragSession)
	// UpdateTarget receives the new dimensions in content units
	UpdateTarget func(s *DragSession, rect geom.Box, opts UpdateOptions)
}

// merge returns h with every hook set in o replaced
func (h Hooks) merge(o Hooks) Hooks {
	if o.OnStart != nil {
		h.OnStart = o.OnStart
	}
	if o.OnMove != nil {
		h.OnMove = o.OnMove
	}
	if o.OnEnd != nil {
		h.OnEnd = o.OnEnd
	}
	if o.UpdateTarget != nil {
		h.UpdateTarget = o.UpdateTarget
	}
	return h
}

// Options parameterize a Resizer
type Options struct {
	Hooks
	Handles   []Handle
	MinDim    float64
	Step      float64
	Unit      string
	KeyWidth  string
	KeyHeight string
}

// Coordinates is what the resizer needs from the coordinate provider
type Coordinates interface {
	BoxOf(n frame.Node) geom.Box
	Scale() float64
}

// Grip is a handle and the host cell it occupies
type Grip struct {
	Handle Handle
	Point  geom.Point
}

// Resizer is the generic drag-resize interaction around a focused node
type Resizer struct {
	opts    Options
	coords  Coordinates
	target  *domain.Component
	node    frame.Node
	box     geom.Box
	session *DragSession
}

// NewResizer creates an unfocused resizer
func NewResizer(coords Coordinates, opts Options) *Resizer {
	if len(opts.Handles) == 0 {
		opts.Handles = AllHandles
	}
	return &Resizer{opts: opts, coords: coords}
}

// Options returns the effective options
func (r *Resizer) Options() Options { return r.opts }

// Focus attaches the resizer to a node
func (r *Resizer) Focus(target *domain.Component, n frame.Node) {
	r.target = target
	r.node = n
	r.UpdateRect()
}

// Focused returns the node the grips are attached to
func (r *Resizer) Focused() frame.Node { return r.node }

// Target returns the model being resized
func (r *Resizer) Target() *domain.Component { return r.target }

// Box returns the focused node's host box as last measured
func (r *Resizer) Box() geom.Box { return r.box }

// UpdateRect re-measures the focused node
func (r *Resizer) UpdateRect() {
	if r.node == nil {
		return
	}
	r.box = r.coords.BoxOf(r.node)
}

// Session returns the active drag, if any
func (r *Resizer) Session() *DragSession { return r.session }

// Active reports whether a drag is in progress
func (r *Resizer) Active() bool { return r.session != nil }

func (r *Resizer) enabled(h Handle) bool {
	for _, e := range r.opts.Handles {
		if e == h {
			return true
		}
	}
	return false
}

// Grips returns the enabled grips placed on the box border cells
func (r *Resizer) Grips() []Grip {
	if r.node == nil {
		return nil
	}
	b := r.box
	right := math.Max(b.Left, b.Right()-1)
	bottom := math.Max(b.Top, b.Bottom()-1)
	midX := math.Floor(b.Left + (b.Width-1)/2)
	midY := math.Floor(b.Top + (b.Height-1)/2)
	points := map[Handle]geom.Point{
		HandleTL: {X: b.Left, Y: b.Top},
		HandleTC: {X: midX, Y: b.Top},
		HandleTR: {X: right, Y: b.Top},
		HandleCR: {X: right, Y: midY},
		HandleBR: {X: right, Y: bottom},
		HandleBC: {X: midX, Y: bottom},
		HandleBL: {X: b.Left, Y: bottom},
		HandleCL: {X: b.Left, Y: midY},
	}
	var grips []Grip
	for _, h := range AllHandles {
		if r.enabled(h) {
			grips = append(grips, Grip{Handle: h, Point: points[h]})
		}
	}
	return grips
}

// HandleAt returns the grip occupying the cell under p
func (r *Resizer) HandleAt(p geom.Point) (Handle, bool) {
	x, y := math.Floor(p.X), math.Floor(p.Y)
	for _, g := range r.Grips() {
		if math.Floor(g.Point.X) == x && math.Floor(g.Point.Y) == y {
			return g.Handle, true
		}
	}
	return "", false
}

// Start begins a drag on handle h from host point p
func (r *Resizer) Start(h Handle, p geom.Point) bool {
	if r.node == nil || r.session != nil || !r.enabled(h) {
		return false
	}
	r.UpdateRect()
	r.session = &DragSession{
		Target:     r.target,
		Node:       r.node,
		Handle:     h,
		StartBox:   r.box,
		Rect:       r.box,
		StartPoint: p,
		Point:      p,
	}
	if r.opts.OnStart != nil {
		r.opts.OnStart(r.session)
	}
	return true
}

// Move previews the drag at host point p
func (r *Resizer) Move(p geom.Point) {
	s := r.session
	if s == nil {
		return
	}
	s.Point = p
	s.Rect = r.rectFor(s)
	r.update(s, false)
	if r.opts.OnMove != nil {
		r.opts.OnMove(s)
	}
}

// End commits the drag
func (r *Resizer) End() {
	s := r.session
	if s == nil {
		return
	}
	r.update(s, true)
	r.session = nil
	r.UpdateRect()
	if r.opts.OnEnd != nil {
		r.opts.OnEnd(s)
	}
}

// Blur ends any drag and detaches from the node
func (r *Resizer) Blur() {
	r.End()
	r.target = nil
	r.node = nil
	r.box = geom.Box{}
}

func (r *Resizer) update(s *DragSession, store bool) {
	if r.opts.UpdateTarget == nil {
		return
	}
	scale := r.coords.Scale()
	if scale <= 0 {
		scale = 1
	}
	rect := s.Rect
	rect.Width /= scale
	rect.Height /= scale
	r.opts.UpdateTarget(s, rect, UpdateOptions{Store: store, Handle: s.Handle})
}

func (r *Resizer) rectFor(s *DragSession) geom.Box {
	d := s.Point.Sub(s.StartPoint)
	start := s.StartBox
	rect := start
	h := s.Handle

	switch {
	case h.left():
		rect.Width = start.Width - d.X
	case h.right():
		rect.Width = start.Width + d.X
	}
	switch {
	case h.top():
		rect.Height = start.Height - d.Y
	case h.bottom():
		rect.Height = start.Height + d.Y
	}

	rect.Width = r.snap(rect.Width)
	rect.Height = r.snap(rect.Height)

	// opposite edges stay put
	if h.left() {
		rect.Left = start.Right() - rect.Width
	}
	if h.top() {
		rect.Top = start.Bottom() - rect.Height
	}
	return rect
}

func (r *Resizer) snap(v float64) float64 {
	if r.opts.Step > 0 {
		v = math.Round(v/r.opts.Step) * r.opts.Step
	}
	if v < r.opts.MinDim {
		v = r.opts.MinDim
	}
	return v
}
