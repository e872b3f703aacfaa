package document

import (
	"math"

	"github.com/mattn/go-runewidth"

	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
	"framegrip/internal/frame"
	"framegrip/internal/geom"
)

// Elements without an explicit size get room for their text plus a border
const (
	minWidth      = 4
	defaultHeight = 3
)

// layoutEvents are the notifications after which the cached layout is stale
var layoutEvents = []eventbus.EventType{
	eventbus.EventComponentAdded,
	eventbus.EventComponentRemoved,
	eventbus.EventComponentUpdated,
	eventbus.EventTargetStyleUpdated,
	eventbus.EventStyleChanged,
	eventbus.EventHistoryChanged,
}

// LocalBox implements frame.Layout. Positions come from the component
// style; children are placed relative to their parent and elements without
// a top stack below their previous sibling.
func (d *Document) LocalBox(n frame.Node) (geom.Box, bool) {
	c := d.reg.ResolveModel(n)
	if c == nil {
		return geom.Box{}, false
	}
	b, ok := d.boxes()[c]
	return b, ok
}

// Invalidate drops the cached layout. Style writes made through the editor
// do this on their own.
func (d *Document) Invalidate() {
	d.layout = nil
}

// boxes returns the absolute box of every component in the tree, laying the
// whole tree out in one pass when the cache is empty
func (d *Document) boxes() map[*domain.Component]geom.Box {
	if d.layout == nil {
		d.layout = make(map[*domain.Component]geom.Box)
		d.passes++
		d.place(d.ed.Wrapper(), 0, 0, geom.Point{})
	}
	return d.layout
}

// place lays out c and its subtree. top is used when the style has none,
// inset when it has no left; origin is the absolute position children of
// the parent are relative to. Returns the box relative to the parent.
func (d *Document) place(c *domain.Component, top, inset float64, origin geom.Point) geom.Box {
	var b geom.Box
	if v, ok := c.Style.Px("left"); ok {
		b.Left = v
	} else {
		b.Left = inset
	}
	if v, ok := c.Style.Px("top"); ok {
		b.Top = v
	} else {
		b.Top = top
	}

	// top level components are not offset by the body
	childInset, childOrigin := 1.0, origin.Add(geom.Point{X: b.Left, Y: b.Top})
	if c == d.ed.Wrapper() {
		childInset, childOrigin = 0, geom.Point{}
	}

	var right, bottom float64
	if c.Components != nil {
		next := childInset
		for _, child := range c.Components.All() {
			cb := d.place(child, next, childInset, childOrigin)
			next = cb.Bottom()
			right = math.Max(right, cb.Right()+1)
			bottom = math.Max(bottom, cb.Bottom()+1)
		}
	}
	if v, ok := c.Style.Px("width"); ok {
		b.Width = v
	} else {
		text := float64(runewidth.StringWidth(c.Attributes[textAttr]) + 2)
		b.Width = math.Max(minWidth, math.Max(text, right))
	}
	if v, ok := c.Style.Px("height"); ok {
		b.Height = v
	} else {
		b.Height = math.Max(defaultHeight, bottom)
	}

	d.layout[c] = b.Translate(origin)
	return b
}

// ElementAt returns the deepest element containing p, in content
// coordinates; later siblings are on top
func (d *Document) ElementAt(p geom.Point) *Element {
	boxes := d.boxes()
	var hit *Element
	var walk func(coll *domain.Collection)
	walk = func(coll *domain.Collection) {
		items := coll.All()
		for i := len(items) - 1; i >= 0; i-- {
			c := items[i]
			if !boxes[c].Contains(p) {
				continue
			}
			if el, ok := d.reg.NodeOf(c).(*Element); ok {
				hit = el
			}
			walk(c.Components)
			return
		}
	}
	walk(d.ed.Components())
	return hit
}
