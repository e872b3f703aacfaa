package frame

import (
	"sync"

	"framegrip/internal/geom"
)

// Coordinates resolves node positions on the host page
type Coordinates interface {
	// BoxOf returns the node's box in host coordinates
	BoxOf(n Node) geom.Box
	// CanvasBounds returns the top-left bound of the visible canvas
	CanvasBounds() geom.Origin
	// TargetToElementDim places a target of the given size against the node
	TargetToElementDim(target geom.Size, n Node) geom.ElementDim
}

// Layout reports node boxes in frame content coordinates
type Layout interface {
	LocalBox(n Node) (geom.Box, bool)
}

// Viewport describes how the frame content is mapped onto the host page
type Viewport struct {
	FrameOffset geom.Point // host position of the frame content origin
	Scroll      geom.Point // frame scroll, in content units
	Zoom        float64    // canvas zoom; zero means 1
	Canvas      geom.Box   // visible canvas area in host coordinates
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// Geometry is the Coordinates implementation backed by a Layout
type Geometry struct {
	mu     sync.RWMutex
	layout Layout
	vp     Viewport
}

// NewGeometry creates a coordinate provider
func NewGeometry(layout Layout, vp Viewport) *Geometry {
	return &Geometry{layout: layout, vp: vp}
}

// Viewport returns the current viewport
func (g *Geometry) Viewport() Viewport {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vp
}

// SetViewport replaces the viewport, e.g. after the host resized
func (g *Geometry) SetViewport(vp Viewport) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vp = vp
}

// SetScroll updates the frame scroll position
func (g *Geometry) SetScroll(p geom.Point) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vp.Scroll = p
}

// BoxOf returns the node's box in host coordinates
func (g *Geometry) BoxOf(n Node) geom.Box {
	if n == nil {
		return geom.Box{}
	}
	local, ok := g.layout.LocalBox(n)
	if !ok {
		return geom.Box{}
	}
	vp := g.Viewport()
	return local.
		Translate(geom.Point{X: -vp.Scroll.X, Y: -vp.Scroll.Y}).
		Scale(vp.zoom()).
		Translate(vp.FrameOffset)
}

// CanvasBounds returns the top-left bound of the visible canvas
func (g *Geometry) CanvasBounds() geom.Origin {
	vp := g.Viewport()
	return geom.Origin{Top: vp.Canvas.Top, Left: vp.Canvas.Left}
}

// TargetToElementDim aligns a target with the node's top edge, kept below
// the canvas top so it stays visible
func (g *Geometry) TargetToElementDim(target geom.Size, n Node) geom.ElementDim {
	box := g.BoxOf(n)
	canvas := g.CanvasBounds()
	top := box.Top
	if top < canvas.Top {
		top = canvas.Top
	}
	return geom.ElementDim{
		Top:           top,
		Left:          box.Left,
		ElementWidth:  box.Width,
		ElementHeight: box.Height,
		TargetWidth:   target.Width,
		TargetHeight:  target.Height,
		CanvasTop:     canvas.Top,
		CanvasLeft:    canvas.Left,
	}
}

// ToContent maps a host point into frame content coordinates
func (g *Geometry) ToContent(p geom.Point) geom.Point {
	vp := g.Viewport()
	z := vp.zoom()
	return geom.Point{
		X: (p.X-vp.FrameOffset.X)/z + vp.Scroll.X,
		Y: (p.Y-vp.FrameOffset.Y)/z + vp.Scroll.Y,
	}
}

// Scale returns the host units per content unit
func (g *Geometry) Scale() float64 {
	return g.Viewport().zoom()
}
