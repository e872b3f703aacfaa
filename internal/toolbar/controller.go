package toolbar

import (
	"go.uber.org/zap"

	"framegrip/internal/domain"
	"framegrip/internal/frame"
	"framegrip/internal/geom"
	"framegrip/internal/overlay"
)

// Placer positions a target against a node
type Placer interface {
	TargetToElementDim(target geom.Size, n frame.Node) geom.ElementDim
}

// NodeLookup finds the node rendering a model
type NodeLookup interface {
	NodeOf(c *domain.Component) frame.Node
}

// Config configures the toolbar controller
type Config struct {
	Enabled bool        // showToolbar
	NewView ViewFactory // defaults to NewButtonsView
	Measure overlay.Measurer
}

// Controller keeps the floating toolbar bound to the selection
type Controller struct {
	el      *overlay.Element
	placer  Placer
	nodes   NodeLookup
	cfg     Config
	actions *Actions
	view    View
	logger  *zap.Logger
}

// NewController creates a controller with a hidden toolbar container
func NewController(cfg Config, placer Placer, nodes NodeLookup, logger *zap.Logger) *Controller {
	if cfg.NewView == nil {
		cfg.NewView = NewButtonsView
	}
	if cfg.Measure == nil {
		cfg.Measure = overlay.CellMeasurer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		el:     overlay.NewElement("toolbar"),
		placer: placer,
		nodes:  nodes,
		cfg:    cfg,
		logger: logger.Named("toolbar"),
	}
}

// Element returns the toolbar container
func (c *Controller) Element() *overlay.Element { return c.el }

// Actions returns the action collection, nil until the view was built
func (c *Controller) Actions() *Actions { return c.actions }

// View returns the toolbar view, nil until built
func (c *Controller) View() View { return c.view }

// Update binds the toolbar to model, or fades it out when model is nil
func (c *Controller) Update(model *domain.Component) {
	if model == nil {
		// display is left as is
		c.el.Opacity = "0"
		return
	}

	if !c.cfg.Enabled || len(model.Toolbar) == 0 {
		c.el.Display = overlay.DisplayNone
		return
	}

	c.el.Opacity = ""
	c.el.Display = overlay.DisplayDefault
	if c.view == nil {
		c.actions = NewActions()
		c.view = c.cfg.NewView(c.actions)
		c.logger.Debug("toolbar view built")
	}
	c.actions.Reset(model.Toolbar)
	c.el.Content = c.view.Render()

	if n := c.nodes.NodeOf(model); n != nil {
		c.UpdatePos(n)
	}
}

// UpdatePos right-aligns the toolbar with the node and aligns their tops
func (c *Controller) UpdatePos(n frame.Node) {
	size := c.cfg.Measure(c.el.Content)
	pos := c.placer.TargetToElementDim(size, n)
	c.el.Place(geom.Box{
		Top:    pos.Top,
		Left:   pos.Left + pos.ElementWidth - pos.TargetWidth,
		Width:  size.Width,
		Height: size.Height,
	})
}

// Hide removes the toolbar from the layout
func (c *Controller) Hide() {
	c.el.Display = overlay.DisplayNone
}
