package overlay

import (
	"go.uber.org/zap"

	"framegrip/internal/domain"
	"framegrip/internal/geom"
)

// CanvasBounder reports the visible canvas bound
type CanvasBounder interface {
	CanvasBounds() geom.Origin
}

// LabelFunc overrides the default badge text
type LabelFunc func(*domain.Component) string

// Target is a decorated element: its model and its host box
type Target struct {
	Model *domain.Component
	Box   geom.Box
}

// Renderer owns the hover highlighter, the name badge and both offset viewers
type Renderer struct {
	bounds      CanvasBounder
	highlighter *Element
	badge       *Element
	offsets     [2]*OffsetView
	label       LabelFunc
	measure     Measurer
	logger      *zap.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLabel sets a custom badge label function
func WithLabel(fn LabelFunc) Option {
	return func(r *Renderer) { r.label = fn }
}

// WithMeasurer sets how badge content is measured
func WithMeasurer(m Measurer) Option {
	return func(r *Renderer) { r.measure = m }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer creates a renderer with all overlays hidden
func NewRenderer(bounds CanvasBounder, opts ...Option) *Renderer {
	r := &Renderer{
		bounds:      bounds,
		highlighter: NewElement("highlighter"),
		badge:       NewElement("badge"),
		offsets:     [2]*OffsetView{newOffsetView(ModeHover), newOffsetView(ModeFixed)},
		measure:     CellMeasurer,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("overlay")
	return r
}

// Highlighter returns the hover outline element
func (r *Renderer) Highlighter() *Element { return r.highlighter }

// Badge returns the name badge element
func (r *Renderer) Badge() *Element { return r.badge }

// OffsetViewer returns the viewer for mode
func (r *Renderer) OffsetViewer(mode Mode) *OffsetView { return r.offsets[mode] }

// decorates reports whether hover decorations may be drawn for t
func decorates(t Target, suppressed bool) bool {
	return t.Model != nil && !t.Model.IsSelected() && !suppressed
}

// ShowHighlighter outlines the target box
func (r *Renderer) ShowHighlighter(t Target, suppressed bool) bool {
	if !decorates(t, suppressed) {
		return false
	}
	r.highlighter.Place(t.Box)
	r.highlighter.Display = DisplayBlock
	return true
}

// HideHighlighter hides the outline
func (r *Renderer) HideHighlighter() {
	r.highlighter.Display = DisplayNone
}

// BadgeLabel returns the text shown in the badge for model
func (r *Renderer) BadgeLabel(model *domain.Component) string {
	if r.label != nil {
		return r.label(model)
	}
	return model.Icon + model.GetName()
}

// ShowBadge draws the badge above the target's top-left corner, clamped to
// the visible canvas
func (r *Renderer) ShowBadge(t Target, suppressed bool) bool {
	if !decorates(t, suppressed) || !t.Model.Badgable {
		return false
	}
	r.badge.Content = r.BadgeLabel(t.Model)
	size := r.measure(r.badge.Content)
	canvas := r.bounds.CanvasBounds()

	top := t.Box.Top - size.Height
	left := t.Box.Left
	if top < canvas.Top || left < canvas.Left {
		r.logger.Debug("badge clamped to canvas",
			zap.Float64("top", top), zap.Float64("left", left))
	}
	if top < canvas.Top {
		top = canvas.Top
	}
	if left < canvas.Left {
		left = canvas.Left
	}
	r.badge.Place(geom.Box{Top: top, Left: left, Width: size.Width, Height: size.Height})
	r.badge.Display = DisplayBlock
	return true
}

// HideBadge hides the badge
func (r *Renderer) HideBadge() {
	r.badge.Display = DisplayNone
}

// ShowOffsetViewer shows the dimension readout. The hover viewer follows the
// same guards as the other hover decorations; the fixed one always shows.
func (r *Renderer) ShowOffsetViewer(t Target, mode Mode, suppressed bool) bool {
	if mode == ModeHover && !decorates(t, suppressed) {
		return false
	}
	r.offsets[mode].update(t.Box, t.Model)
	return true
}

// HideOffsetViewer hides the viewer for mode
func (r *Renderer) HideOffsetViewer(mode Mode) {
	r.offsets[mode].Display = DisplayNone
}

// HideAll hides every overlay owned by the renderer
func (r *Renderer) HideAll() {
	r.HideHighlighter()
	r.HideBadge()
	r.HideOffsetViewer(ModeHover)
	r.HideOffsetViewer(ModeFixed)
}
