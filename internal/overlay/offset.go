package overlay

import (
	"fmt"

	"framegrip/internal/domain"
	"framegrip/internal/geom"
)

// Mode selects which offset viewer is addressed
type Mode int

const (
	// ModeHover follows the pointer
	ModeHover Mode = iota
	// ModeFixed stays on the selected component
	ModeFixed
)

func (m Mode) String() string {
	if m == ModeFixed {
		return "fixed"
	}
	return "hover"
}

// Edges holds one value per box side
type Edges struct {
	Top, Right, Bottom, Left float64
}

// IsZero reports whether all sides are zero
func (e Edges) IsZero() bool {
	return e == Edges{}
}

// edgesFromStyle reads prop-top/right/bottom/left, falling back to the shorthand
func edgesFromStyle(style domain.Style, prop string) Edges {
	var e Edges
	if v, ok := style.Px(prop); ok {
		e = Edges{Top: v, Right: v, Bottom: v, Left: v}
	}
	if v, ok := style.Px(prop + "-top"); ok {
		e.Top = v
	}
	if v, ok := style.Px(prop + "-right"); ok {
		e.Right = v
	}
	if v, ok := style.Px(prop + "-bottom"); ok {
		e.Bottom = v
	}
	if v, ok := style.Px(prop + "-left"); ok {
		e.Left = v
	}
	return e
}

// OffsetView is the dimension readout drawn around an element
type OffsetView struct {
	*Element
	Mode    Mode
	Target  geom.Box // border box of the decorated element
	Margin  Edges
	Padding Edges
}

func newOffsetView(mode Mode) *OffsetView {
	return &OffsetView{Element: NewElement("offset-" + mode.String()), Mode: mode}
}

// update recomputes the view for a target box and model style
func (v *OffsetView) update(box geom.Box, model *domain.Component) {
	v.Target = box
	v.Margin, v.Padding = Edges{}, Edges{}
	if model != nil {
		v.Margin = edgesFromStyle(model.Style, "margin")
		v.Padding = edgesFromStyle(model.Style, "padding")
	}
	v.Place(geom.Box{
		Top:    box.Top - v.Margin.Top,
		Left:   box.Left - v.Margin.Left,
		Width:  box.Width + v.Margin.Left + v.Margin.Right,
		Height: box.Height + v.Margin.Top + v.Margin.Bottom,
	})
	v.Content = fmt.Sprintf("%s×%s", domain.FormatPx(box.Width, ""), domain.FormatPx(box.Height, ""))
	v.Display = DisplayBlock
}
