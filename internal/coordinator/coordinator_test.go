package coordinator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framegrip/internal/config"
	"framegrip/internal/document"
	"framegrip/internal/eventbus"
	"framegrip/internal/geom"
	"framegrip/internal/resize"
)

const page = `<html><body>
<div id="a" data-name="A" style="left:0;top:0;width:20;height:4" data-resizable="true">A</div>
<div id="b" data-name="B" style="left:0;top:5;width:20;height:4" data-toolbar="tlb-clone,tlb-delete">B</div>
<div id="c" data-name="C" style="left:0;top:30;width:20;height:4" contenteditable>C</div>
</body></html>`

func newCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c, err := NewCoordinator(eventbus.New(nil), config.DefaultConfig(), strings.NewReader(page), nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func query(t *testing.T, c *Coordinator, sel string) *document.Element {
	t.Helper()
	el, err := c.Document.Query(sel)
	require.NoError(t, err)
	require.NotNil(t, el)
	return el
}

func TestPointerMoveHovers(t *testing.T) {
	c := newCoordinator(t)

	c.PointerMove(geom.Point{X: 5, Y: 1})
	snap := c.Snapshot()
	assert.Equal(t, "#a", snap.Hovered)
	assert.Equal(t, "A@0,0 1x1", snap.Badge)
	assert.Equal(t, "@0,0 20x4", snap.Highlighter)

	c.PointerMove(geom.Point{X: 5, Y: 6})
	assert.Equal(t, "#b", c.Snapshot().Hovered)

	c.PointerMove(geom.Point{X: 50, Y: 50})
	snap = c.Snapshot()
	assert.Empty(t, snap.Hovered)
	assert.Empty(t, snap.Highlighter)
	assert.Empty(t, snap.Badge)
}

func TestPressSelectsAndDragsGrip(t *testing.T) {
	c := newCoordinator(t)

	require.Equal(t, PressElement, c.Press(geom.Point{X: 5, Y: 1}))
	snap := c.Snapshot()
	assert.Equal(t, "#a", snap.Selected)
	assert.Equal(t, 8, snap.Grips)
	assert.Equal(t, "20×4@0,0 20x4", snap.FixedOffset)
	assert.Equal(t, " up  clone  del @0,4 16x1", snap.Toolbar)

	require.Equal(t, PressGrip, c.Press(geom.Point{X: 19, Y: 3}))
	assert.True(t, c.Dragging())
	assert.Equal(t, []string{"gjs-resizing"}, c.Snapshot().BodyClass)

	c.PointerMove(geom.Point{X: 22, Y: 3})
	c.Release(geom.Point{X: 22, Y: 3})

	assert.False(t, c.Dragging())
	a := c.Registry.ResolveModel(query(t, c, "#a"))
	assert.Equal(t, "23px", a.Style["width"])
	assert.Equal(t, "4px", a.Style["height"])
	assert.Empty(t, c.Snapshot().BodyClass)

	require.True(t, c.Undo())
	assert.Equal(t, "20", a.Style["width"])
	require.True(t, c.Redo())
	assert.Equal(t, "23px", a.Style["width"])
}

func TestToolbarButtonsRunCommands(t *testing.T) {
	c := newCoordinator(t)
	require.Equal(t, PressElement, c.Press(geom.Point{X: 5, Y: 6}))
	require.Equal(t, " clone  del @5,8 12x1", c.Snapshot().Toolbar)

	require.Equal(t, PressToolbar, c.Press(geom.Point{X: 9, Y: 5}))
	snap := c.Snapshot()
	assert.Equal(t, 4, snap.Components)
	assert.Equal(t, "B", snap.Selected)

	require.Equal(t, PressToolbar, c.Press(geom.Point{X: 16, Y: 5}))
	snap = c.Snapshot()
	assert.Equal(t, 3, snap.Components)
	assert.Empty(t, snap.Selected)
}

func TestScrollByClamps(t *testing.T) {
	c := newCoordinator(t)
	c.PointerMove(geom.Point{X: 5, Y: 6})

	assert.True(t, c.ScrollBy(100))
	assert.Equal(t, 11.0, c.Geometry.Viewport().Scroll.Y)
	assert.False(t, c.ScrollBy(5))
	assert.True(t, c.ScrollBy(-100))
	assert.Equal(t, 0.0, c.Geometry.Viewport().Scroll.Y)
}

func TestKeys(t *testing.T) {
	c := newCoordinator(t)
	c.Press(geom.Point{X: 5, Y: 6})

	assert.True(t, c.Key("ctrl+c"))
	assert.True(t, c.Key("cmd+v"))
	assert.Equal(t, 4, c.Snapshot().Components)
	assert.Equal(t, "#b", c.Snapshot().Clipboard)

	assert.True(t, c.Key("delete"))
	assert.Equal(t, 3, c.Snapshot().Components)
	assert.Empty(t, c.Snapshot().Selected)
}

func TestEditableFocusBlocksDelete(t *testing.T) {
	c := newCoordinator(t)
	el := query(t, c, "#c")

	c.Click(el)
	c.Click(el)
	require.True(t, c.Snapshot().Focused)

	assert.False(t, c.Key("backspace"))
	assert.Equal(t, "#c", c.Snapshot().Selected)
	assert.Equal(t, 3, c.Snapshot().Components)

	assert.True(t, c.Key("esc"))
	assert.False(t, c.Snapshot().Focused)
	assert.True(t, c.Key("backspace"))
	assert.Equal(t, 2, c.Snapshot().Components)
}

func TestDragHandle(t *testing.T) {
	c := newCoordinator(t)
	assert.ErrorIs(t, c.DragHandle(resize.HandleCR, 2, 0), ErrNotResizable)

	c.Click(query(t, c, "#a"))
	require.NoError(t, c.DragHandle(resize.HandleCR, 2, 0))

	a := c.Registry.ResolveModel(query(t, c, "#a"))
	assert.Equal(t, "22px", a.Style["width"])
	assert.Equal(t, "4", a.Style["height"])
}

func TestHoverForgetsRemovedElement(t *testing.T) {
	c := newCoordinator(t)
	c.Press(geom.Point{X: 5, Y: 6})
	c.PointerMove(geom.Point{X: 5, Y: 6})

	c.Key("delete")
	c.PointerMove(geom.Point{X: 5, Y: 1})

	assert.Equal(t, "#a", c.Snapshot().Hovered)
}

const nestedPage = `<html><body>
<div id="p" style="left:0;top:0;width:30;height:10"><div id="q" style="left:2;top:2;width:10;height:4">Q</div></div>
</body></html>`

func TestDeletingParentOfHoveredChildHidesHover(t *testing.T) {
	c, err := NewCoordinator(eventbus.New(nil), config.DefaultConfig(), strings.NewReader(nestedPage), nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	require.Equal(t, PressElement, c.Press(geom.Point{X: 25, Y: 8}))
	require.Equal(t, "#p", c.Snapshot().Selected)
	c.PointerMove(geom.Point{X: 4, Y: 4})
	require.Equal(t, "#q", c.Snapshot().Hovered)
	require.NotEmpty(t, c.Snapshot().HoverOffset)

	require.True(t, c.Key("delete"))
	snap := c.Snapshot()
	assert.Equal(t, 0, snap.Components)
	assert.Empty(t, snap.Selected)
	assert.Empty(t, snap.Hovered)
	assert.Empty(t, snap.HoverOffset)
	assert.Empty(t, snap.Highlighter)
	assert.Empty(t, snap.Badge)
	assert.Empty(t, snap.FixedOffset)

	c.PointerMove(geom.Point{X: 60, Y: 20})
	c.ScrollBy(0)
	assert.Empty(t, c.Snapshot().HoverOffset)
}
