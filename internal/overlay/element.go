package overlay

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"framegrip/internal/geom"
)

// Display mirrors the CSS display values the overlays use
type Display string

const (
	DisplayDefault Display = ""
	DisplayBlock   Display = "block"
	DisplayNone    Display = "none"
)

// Element is a positioned overlay element on the host page
type Element struct {
	Name    string
	Display Display
	Opacity string // "" is fully opaque, "0" transparent
	Top     float64
	Left    float64
	Width   float64
	Height  float64
	Content string
}

// NewElement creates a hidden element
func NewElement(name string) *Element {
	return &Element{Name: name, Display: DisplayNone}
}

// Visible reports whether the element currently shows on screen
func (e *Element) Visible() bool {
	return e.Display != DisplayNone && e.Opacity != "0"
}

// Box returns the element's placement
func (e *Element) Box() geom.Box {
	return geom.Box{Top: e.Top, Left: e.Left, Width: e.Width, Height: e.Height}
}

// Place moves and sizes the element to b
func (e *Element) Place(b geom.Box) {
	e.Top, e.Left, e.Width, e.Height = b.Top, b.Left, b.Width, b.Height
}

// Measurer returns the rendered size of some overlay content
type Measurer func(content string) geom.Size

// CellMeasurer measures content in terminal cells
func CellMeasurer(content string) geom.Size {
	if content == "" {
		return geom.Size{}
	}
	lines := strings.Split(content, "\n")
	width := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	return geom.Size{Width: float64(width), Height: float64(len(lines))}
}
