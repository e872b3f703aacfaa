package resize

import (
	"go.uber.org/zap"

	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
	"framegrip/internal/frame"
	"framegrip/internal/geom"
)

// BodyClasser toggles state classes on the document body
type BodyClasser interface {
	ToggleBodyClass(class string, on bool)
}

// Config configures the resize controller
type Config struct {
	StylePrefix string
	// Suppress is called with true when a drag starts and false when it ends
	Suppress func(bool)
	// ModelHooks returns per-model hook overrides; nil fields keep the
	// controller's own hooks
	ModelHooks func(model *domain.Component) Hooks
}

// Controller runs resize sessions for the selected component and writes
// the resulting dimensions back into its style
type Controller struct {
	cfg     Config
	bus     eventbus.EventBus
	coords  Coordinates
	styles  domain.StyleSource
	body    BodyClasser
	resizer *Resizer
	logger  *zap.Logger
}

// NewController creates a controller with no active session
func NewController(cfg Config, bus eventbus.EventBus, coords Coordinates, styles domain.StyleSource, body BodyClasser, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		cfg:    cfg,
		bus:    bus,
		coords: coords,
		styles: styles,
		body:   body,
		logger: logger.Named("resize"),
	}
}

// Subscribe keeps the grips in sync with undo and redo
func (c *Controller) Subscribe() func() {
	return c.bus.Subscribe(eventbus.EventHistoryChanged, func(eventbus.DomainEvent) {
		if c.resizer != nil && !c.resizer.Active() {
			c.resizer.UpdateRect()
		}
	})
}

// Resizer returns the current interaction, nil when nothing is resizable
func (c *Controller) Resizer() *Resizer { return c.resizer }

// InitResize attaches a resizer to the model's node, replacing any previous one
func (c *Controller) InitResize(model *domain.Component, n frame.Node) bool {
	c.Stop()
	if model == nil || n == nil || !model.IsResizable() {
		return false
	}
	c.resizer = NewResizer(c.coords, c.optionsFor(model))
	c.resizer.Focus(model, n)
	c.logger.Debug("resize attached", zap.String("component", model.ID))
	return true
}

// Stop ends the active session and detaches the grips
func (c *Controller) Stop() {
	if c.resizer == nil {
		return
	}
	c.resizer.Blur()
	c.resizer = nil
}

func (c *Controller) optionsFor(model *domain.Component) Options {
	opts := Options{
		Hooks: Hooks{
			OnStart:      c.onStart,
			OnMove:       c.onMove,
			OnEnd:        c.onEnd,
			UpdateTarget: c.updateTarget,
		},
		MinDim:    1,
		Unit:      "px",
		KeyWidth:  "width",
		KeyHeight: "height",
	}
	if c.cfg.ModelHooks != nil {
		opts.Hooks = opts.Hooks.merge(c.cfg.ModelHooks(model))
	}
	o := model.Resizable.Options
	if o == nil {
		return opts
	}
	for _, h := range o.Handles {
		opts.Handles = append(opts.Handles, Handle(h))
	}
	if o.MinDim > 0 {
		opts.MinDim = o.MinDim
	}
	if o.Step > 0 {
		opts.Step = o.Step
	}
	if o.Unit != "" {
		opts.Unit = o.Unit
	}
	if o.KeyWidth != "" {
		opts.KeyWidth = o.KeyWidth
	}
	if o.KeyHeight != "" {
		opts.KeyHeight = o.KeyHeight
	}
	return opts
}

func (c *Controller) resizingClass() string {
	return c.cfg.StylePrefix + "resizing"
}

func (c *Controller) onStart(s *DragSession) {
	if c.body != nil {
		c.body.ToggleBodyClass(c.resizingClass(), true)
	}
	s.Writer = c.styles.StyleWriter(s.Target)
	s.Style = s.Writer.GetStyle().Clone()
	s.SuppressOffsets = true
	if c.cfg.Suppress != nil {
		c.cfg.Suppress(true)
	}
	c.logger.Debug("resize started", zap.String("handle", string(s.Handle)))
}

func (c *Controller) onMove(*DragSession) {
	c.bus.Publish(eventbus.CanvasOffsetChangedEvent{})
}

func (c *Controller) onEnd(s *DragSession) {
	if c.body != nil {
		c.body.ToggleBodyClass(c.resizingClass(), false)
	}
	c.bus.Publish(eventbus.CanvasOffsetChangedEvent{})
	s.SuppressOffsets = false
	if c.cfg.Suppress != nil {
		c.cfg.Suppress(false)
	}
	c.logger.Debug("resize ended", zap.String("style", s.Style.String()))
}

func (c *Controller) updateTarget(s *DragSession, rect geom.Box, opts UpdateOptions) {
	if s.Writer == nil {
		return
	}
	s.OnlyHeight = opts.Handle == HandleTC || opts.Handle == HandleBC
	s.OnlyWidth = opts.Handle == HandleCL || opts.Handle == HandleCR

	o := Options{Unit: "px", KeyWidth: "width", KeyHeight: "height"}
	if c.resizer != nil {
		o = c.resizer.Options()
	}
	if s.Style == nil {
		s.Style = domain.Style{}
	}
	if !s.OnlyHeight {
		s.Style[o.KeyWidth] = domain.FormatPx(rect.Width, o.Unit)
	}
	if !s.OnlyWidth {
		s.Style[o.KeyHeight] = domain.FormatPx(rect.Height, o.Unit)
	}

	s.Writer.SetStyle(s.Style.Clone(), domain.SetStyleOptions{AvoidStore: true})
	c.bus.Publish(eventbus.TargetStyleUpdatedEvent{Component: s.Target})
	if opts.Store {
		s.Writer.OnStyleChanged(s.Style.Clone())
	}
}
