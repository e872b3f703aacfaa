// Package geom holds the value types shared by the coordinate spaces of the
// editor: frame content, host page and canvas.
package geom

// Point is a position in some coordinate space.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// Origin is the top-left bound of a visible area.
type Origin struct {
	Top, Left float64
}

// Box is a rectangle given by its top-left corner and dimensions.
type Box struct {
	Top, Left, Width, Height float64
}

// Right returns the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Size returns the box dimensions.
func (b Box) Size() Size { return Size{Width: b.Width, Height: b.Height} }

// Contains reports whether p lies inside the box, right and bottom edges excluded.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Left && p.X < b.Right() && p.Y >= b.Top && p.Y < b.Bottom()
}

// Translate returns the box moved by d.
func (b Box) Translate(d Point) Box {
	b.Left += d.X
	b.Top += d.Y
	return b
}

// Scale multiplies position and size by f.
func (b Box) Scale(f float64) Box {
	return Box{Top: b.Top * f, Left: b.Left * f, Width: b.Width * f, Height: b.Height * f}
}

// ElementDim is the relative placement of a target (such as the toolbar)
// against an element.
type ElementDim struct {
	Top, Left                   float64
	ElementWidth, ElementHeight float64
	TargetWidth, TargetHeight   float64
	CanvasTop, CanvasLeft       float64
}
