package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framegrip/internal/domain"
	"framegrip/internal/editor"
	"framegrip/internal/eventbus"
	"framegrip/internal/frame"
	"framegrip/internal/geom"
)

const page = `<html><body>
<div id="hero" data-name="Hero" style="left:2;top:1;width:30;height:8" data-resizable="handles:tc,bc;min:2">
  <p id="title" contenteditable="true">Hello</p>
  <span id="note" data-toolbar="" data-copyable="false">x</span>
</div>
<div id="footer" data-removable="false" data-resizable="true" data-toolbar="tlb-clone">Footer</div>
<script>ignored()</script>
</body></html>`

type loaded struct {
	doc *Document
	ed  *editor.Editor
	reg *frame.Registry
	bus eventbus.EventBus
}

func load(t *testing.T) loaded {
	t.Helper()
	bus := eventbus.New(nil)
	ed := editor.New(bus, nil)
	reg := frame.NewRegistry()
	doc, err := Load(strings.NewReader(page), ed, reg, bus, nil)
	require.NoError(t, err)
	t.Cleanup(doc.Close)
	return loaded{doc: doc, ed: ed, reg: reg, bus: bus}
}

func (l loaded) model(t *testing.T, sel string) *domain.Component {
	t.Helper()
	el, err := l.doc.Query(sel)
	require.NoError(t, err)
	require.NotNil(t, el, sel)
	c := l.doc.Model(el)
	require.NotNil(t, c, sel)
	return c
}

func TestLoadBuildsComponentTree(t *testing.T) {
	l := load(t)

	require.Equal(t, 2, l.ed.Components().Len())
	assert.Equal(t, 5, l.reg.Len())
	assert.Same(t, l.ed.Wrapper(), l.doc.Model(l.doc.BodyElement()))

	hero := l.model(t, "#hero")
	assert.Equal(t, "Hero", hero.GetName())
	assert.Equal(t, 2, hero.Components.Len())
	assert.Equal(t, domain.Style{"left": "2", "top": "1", "width": "30", "height": "8"}, hero.Style)
	require.NotNil(t, hero.Resizable.Options)
	assert.Equal(t, []string{"tc", "bc"}, hero.Resizable.Options.Handles)
	assert.Equal(t, 2.0, hero.Resizable.Options.MinDim)
	assert.Len(t, hero.Toolbar, 3)

	title := l.model(t, "#title")
	assert.Equal(t, "text", title.Type)
	assert.False(t, title.IsResizable())

	note := l.model(t, "#note")
	assert.Empty(t, note.Toolbar)
	assert.False(t, note.Copyable)

	footer := l.model(t, "#footer")
	assert.False(t, footer.Removable)
	assert.True(t, footer.Resizable.Enabled)
	assert.Nil(t, footer.Resizable.Options)
	assert.Equal(t, []domain.ActionSpec{{Command: "tlb-clone", Label: "clone"}}, footer.Toolbar)
}

func TestLayout(t *testing.T) {
	l := load(t)
	box := func(sel string) geom.Box {
		el, err := l.doc.Query(sel)
		require.NoError(t, err)
		b, ok := l.doc.LocalBox(el)
		require.True(t, ok)
		return b
	}

	assert.Equal(t, geom.Box{Top: 1, Left: 2, Width: 30, Height: 8}, box("#hero"))
	assert.Equal(t, geom.Box{Top: 2, Left: 3, Width: 7, Height: 3}, box("#title"))
	assert.Equal(t, geom.Box{Top: 5, Left: 3, Width: 4, Height: 3}, box("#note"))
	assert.Equal(t, geom.Box{Top: 9, Left: 0, Width: 8, Height: 3}, box("#footer"))

	l.model(t, "#hero").Style["width"] = "40px"
	assert.Equal(t, 30.0, box("#hero").Width)
	l.doc.Invalidate()
	assert.Equal(t, 40.0, box("#hero").Width)
}

func TestLayoutFollowsStyleWrites(t *testing.T) {
	l := load(t)
	hero := l.model(t, "#hero")
	el := l.reg.NodeOf(hero)

	w := l.ed.Styles().StyleWriter(hero)
	style := w.GetStyle()
	style["height"] = "12px"
	w.SetStyle(style, domain.SetStyleOptions{AvoidStore: true})
	l.bus.Publish(eventbus.TargetStyleUpdatedEvent{Component: hero})

	b, ok := l.doc.LocalBox(el)
	require.True(t, ok)
	assert.Equal(t, 12.0, b.Height)
	footer, ok := l.doc.LocalBox(l.reg.NodeOf(l.model(t, "#footer")))
	require.True(t, ok)
	assert.Equal(t, 13.0, footer.Top)

	w.OnStyleChanged(style)
	require.True(t, l.ed.UndoManager().Undo())
	b, _ = l.doc.LocalBox(el)
	assert.Equal(t, 8.0, b.Height)
}

func TestLayoutRunsOncePerChange(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 12; i++ {
		sb.WriteString("<div>")
		for j := 0; j < 12; j++ {
			sb.WriteString("<div>")
			for k := 0; k < 12; k++ {
				sb.WriteString("<span>x</span>")
			}
			sb.WriteString("</div>")
		}
		sb.WriteString("</div>")
	}
	sb.WriteString("</body></html>")

	bus := eventbus.New(nil)
	ed := editor.New(bus, nil)
	reg := frame.NewRegistry()
	doc, err := Load(strings.NewReader(sb.String()), ed, reg, bus, nil)
	require.NoError(t, err)
	t.Cleanup(doc.Close)

	elements := doc.Elements()
	require.Len(t, elements, 12+12*12+12*12*12)
	for _, el := range elements {
		_, ok := doc.LocalBox(el)
		require.True(t, ok)
	}
	doc.ElementAt(geom.Point{X: 3, Y: 3})
	assert.Equal(t, 1, doc.passes)

	first := doc.Model(elements[0])
	bus.Publish(eventbus.ComponentUpdatedEvent{Component: first})
	for _, el := range elements {
		doc.LocalBox(el)
	}
	assert.Equal(t, 2, doc.passes)

	// the last span of the first row sits below its eleven siblings
	b, ok := doc.LocalBox(elements[13])
	require.True(t, ok)
	assert.Equal(t, geom.Box{Top: 2 + 11*3, Left: 2, Width: 4, Height: 3}, b)
}

func TestElementAt(t *testing.T) {
	l := load(t)
	id := func(p geom.Point) string {
		el := l.doc.ElementAt(p)
		if el == nil {
			return ""
		}
		return el.Attr("id")
	}

	assert.Equal(t, "note", id(geom.Point{X: 4, Y: 6}))
	assert.Equal(t, "title", id(geom.Point{X: 3, Y: 2}))
	assert.Equal(t, "hero", id(geom.Point{X: 20, Y: 3}))
	assert.Equal(t, "footer", id(geom.Point{X: 1, Y: 10}))
	assert.Equal(t, "", id(geom.Point{X: 50, Y: 50}))
}

func TestAddedComponentsAreMaterialized(t *testing.T) {
	l := load(t)
	hero := l.model(t, "#hero")

	clone := hero.Clone()
	l.ed.Components().Add(clone, 1)

	assert.Equal(t, 8, l.reg.Len())
	el, err := l.doc.Query("//body/div[2]")
	require.NoError(t, err)
	require.NotNil(t, el)
	assert.Same(t, clone, l.doc.Model(el))
	assert.Equal(t, "Hero", el.Attr("data-name"))
	assert.Equal(t, "", el.Attr("id"))
	for _, child := range clone.Components.All() {
		assert.NotNil(t, l.reg.NodeOf(child))
	}
	assert.Equal(t, "footer", l.doc.Elements()[6].Attr("id"))
}

func TestRemovedComponentsAreDetached(t *testing.T) {
	l := load(t)
	hero := l.model(t, "#hero")
	title := l.model(t, "#title")
	require.True(t, l.doc.Focus(l.reg.NodeOf(title).(*Element)))

	l.ed.Remove(hero)

	assert.Nil(t, l.reg.NodeOf(hero))
	assert.Nil(t, l.reg.NodeOf(title))
	assert.Equal(t, 2, l.reg.Len())
	assert.False(t, l.doc.ActiveElementEditable())
	el, err := l.doc.Query("#hero")
	require.NoError(t, err)
	assert.Nil(t, el)
}

func TestFocus(t *testing.T) {
	l := load(t)
	title, err := l.doc.Query("#title")
	require.NoError(t, err)
	note, err := l.doc.Query("#note")
	require.NoError(t, err)

	assert.False(t, l.doc.Focus(note))
	assert.False(t, l.doc.ActiveElementEditable())
	assert.True(t, l.doc.Focus(title))
	assert.True(t, l.doc.ActiveElementEditable())
	l.doc.Blur()
	assert.False(t, l.doc.ActiveElementEditable())
}

func TestToggleBodyClass(t *testing.T) {
	l := load(t)

	l.doc.ToggleBodyClass("gjs-resizing", true)
	l.doc.ToggleBodyClass("gjs-resizing", true)
	assert.Equal(t, []string{"gjs-resizing"}, l.doc.BodyClasses())

	l.doc.ToggleBodyClass("gjs-resizing", false)
	assert.Empty(t, l.doc.BodyClasses())
}

func TestRenderSyncsStyle(t *testing.T) {
	l := load(t)
	l.model(t, "#hero").Style["width"] = "31px"

	var sb strings.Builder
	require.NoError(t, l.doc.Render(&sb))

	assert.Contains(t, sb.String(), `style="height:8;left:2;top:1;width:31px"`)
	assert.NotContains(t, sb.String(), `id="title" style=`)
}

func TestQueryErrors(t *testing.T) {
	l := load(t)

	_, err := l.doc.Query("//[")
	assert.Error(t, err)

	el, err := l.doc.Query("#missing")
	assert.NoError(t, err)
	assert.Nil(t, el)
}
