package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"framegrip/internal/coordinator"
	"framegrip/internal/frame"
	"framegrip/internal/geom"
	"framegrip/internal/overlay"
	"framegrip/internal/toolbar"
)

const gripRune = '■'

type cell struct {
	ch    rune
	style int
}

// Canvas is a grid of styled cells
type Canvas struct {
	width  int
	height int
	cells  [][]cell
	styles []lipgloss.Style
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  max(width, 0),
		height: max(height, 0),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		row := make([]cell, c.width)
		for x := range row {
			row[x] = cell{ch: ' '}
		}
		c.cells[y] = row
	}
	return c
}

// Size returns the canvas dimensions in cells
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Style registers s and returns its id
func (c *Canvas) Style(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

// Set writes one cell; cells outside the canvas are dropped
func (c *Canvas) Set(x, y int, ch rune, style int) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	if runewidth.RuneWidth(ch) != 1 {
		ch = '?'
	}
	c.cells[y][x] = cell{ch: ch, style: style}
}

// Text writes s starting at (x, y), at most limit cells when limit >= 0
func (c *Canvas) Text(x, y int, s string, style, limit int) {
	for i, ch := range []rune(s) {
		if limit >= 0 && i >= limit {
			return
		}
		c.Set(x+i, y, ch, style)
	}
}

// Frame draws the border of b
func (c *Canvas) Frame(b geom.Box, style int) {
	left, top := cellOf(b.Left), cellOf(b.Top)
	right, bottom := left+cellOf(b.Width)-1, top+cellOf(b.Height)-1
	if right < left || bottom < top {
		return
	}
	for x := left + 1; x < right; x++ {
		c.Set(x, top, '─', style)
		c.Set(x, bottom, '─', style)
	}
	for y := top + 1; y < bottom; y++ {
		c.Set(left, y, '│', style)
		c.Set(right, y, '│', style)
	}
	c.Set(left, top, '┌', style)
	c.Set(right, top, '┐', style)
	c.Set(left, bottom, '└', style)
	c.Set(right, bottom, '┘', style)
}

// Plain returns the canvas text without styles
func (c *Canvas) Plain() string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			b.WriteRune(cl.ch)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// Render returns the canvas with runs of equally styled cells rendered
// through their style
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b, run strings.Builder
		current := 0
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.styles[current].Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.ch)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func cellOf(v float64) int {
	return int(math.Floor(v))
}

// painter draws a coordinator session onto a canvas in frame content
// coordinates
type painter struct {
	c      *coordinator.Coordinator
	canvas *Canvas
	geo    *frame.Geometry
}

// Paint draws the document and every visible overlay. The canvas covers the
// whole content so a viewport can scroll over it.
func Paint(c *coordinator.Coordinator, st *Styles) *Canvas {
	vp := c.Geometry.Viewport()
	height := math.Max(c.ContentHeight(), vp.Scroll.Y+vp.Canvas.Height)
	p := &painter{
		c:      c,
		canvas: NewCanvas(cellOf(vp.Canvas.Width), int(math.Ceil(height))),
		geo:    c.Geometry,
	}

	element := p.canvas.Style(st.Element)
	text := p.canvas.Style(st.Text)
	for _, el := range c.Document.Elements() {
		b, ok := c.Document.LocalBox(el)
		if !ok {
			continue
		}
		p.canvas.Frame(b, element)
		p.canvas.Text(cellOf(b.Left)+1, cellOf(b.Top)+1, el.Text(), text, cellOf(b.Width)-2)
	}

	ov := c.Selector.Overlays()
	if hl := ov.Highlighter(); hl.Visible() {
		p.canvas.Frame(p.content(hl.Box()), p.canvas.Style(st.Highlighter))
	}
	if fixed := ov.OffsetViewer(overlay.ModeFixed); fixed.Visible() {
		p.canvas.Frame(p.content(fixed.Target), p.canvas.Style(st.Selected))
		p.readout(fixed, p.canvas.Style(st.Offset))
	}
	if hover := ov.OffsetViewer(overlay.ModeHover); hover.Visible() {
		p.readout(hover, p.canvas.Style(st.Offset))
	}
	if badge := ov.Badge(); badge.Visible() {
		p.label(badge, p.canvas.Style(st.Badge))
	}
	tb := c.Selector.Toolbar()
	if el := tb.Element(); el.Visible() {
		style := lipgloss.NewStyle()
		if view, ok := tb.View().(*toolbar.ButtonsView); ok {
			style = view.Style
		}
		p.label(el, p.canvas.Style(style))
	}
	if r := c.Selector.Resize().Resizer(); r != nil {
		grip := p.canvas.Style(st.Grip)
		for _, g := range r.Grips() {
			pt := p.geo.ToContent(g.Point)
			p.canvas.Set(cellOf(pt.X), cellOf(pt.Y), gripRune, grip)
		}
	}
	return p.canvas
}

// content maps a host box into content coordinates
func (p *painter) content(b geom.Box) geom.Box {
	tl := p.geo.ToContent(geom.Point{X: b.Left, Y: b.Top})
	scale := p.geo.Scale()
	return geom.Box{Top: tl.Y, Left: tl.X, Width: b.Width / scale, Height: b.Height / scale}
}

// label draws an overlay's content at its position
func (p *painter) label(el *overlay.Element, style int) {
	b := p.content(el.Box())
	for i, line := range strings.Split(el.Content, "\n") {
		p.canvas.Text(cellOf(b.Left), cellOf(b.Top)+i, line, style, -1)
	}
}

// readout draws the dimension text right below the decorated box
func (p *painter) readout(v *overlay.OffsetView, style int) {
	b := p.content(v.Box())
	p.canvas.Text(cellOf(b.Left), cellOf(b.Bottom()), v.Content, style, -1)
}
