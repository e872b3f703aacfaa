package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
)

type recorder struct {
	events []eventbus.DomainEvent
}

func (r *recorder) on(bus eventbus.EventBus, types ...eventbus.EventType) {
	for _, t := range types {
		bus.Subscribe(t, func(e eventbus.DomainEvent) { r.events = append(r.events, e) })
	}
}

func (r *recorder) types() []eventbus.EventType {
	var out []eventbus.EventType
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func newEditor(t *testing.T, names ...string) (*Editor, []*domain.Component) {
	t.Helper()
	e := New(eventbus.New(nil), nil)
	var comps []*domain.Component
	for _, n := range names {
		c := domain.NewComponent("default")
		c.Name = n
		e.Components().Add(c, -1)
		comps = append(comps, c)
	}
	return e, comps
}

func countSelected(e *Editor) int {
	n := 0
	e.Wrapper().Walk(func(c *domain.Component) {
		if c.IsSelected() {
			n++
		}
	})
	return n
}

func TestSelectKeepsSingleSelection(t *testing.T) {
	e, comps := newEditor(t, "A", "B", "C")
	rec := &recorder{}
	rec.on(e.bus, eventbus.EventSelectionChanged)

	e.Select(comps[0])
	e.Select(comps[1])
	e.Select(comps[1])

	assert.Equal(t, 1, countSelected(e))
	assert.Same(t, comps[1], e.Selected())
	assert.Equal(t, domain.StatusNone, comps[0].Status)
	require.Len(t, rec.events, 2)
	last := rec.events[1].(eventbus.SelectionChangedEvent)
	assert.Same(t, comps[0], last.Previous)
	assert.Same(t, comps[1], last.Current)

	e.Select(nil)
	assert.Equal(t, 0, countSelected(e))
	assert.Nil(t, e.Selected())
}

func TestRemoveSelectedClearsSelection(t *testing.T) {
	e, comps := newEditor(t, "A", "B")
	child := domain.NewComponent("text")
	comps[1].Components.Add(child, -1)
	e.Select(child)
	rec := &recorder{}
	rec.on(e.bus, eventbus.EventSelectionChanged, eventbus.EventComponentRemoved)

	e.Remove(comps[1])

	assert.True(t, comps[1].IsDestroyed())
	assert.Nil(t, e.Selected())
	assert.Equal(t, 1, e.Components().Len())
	assert.Equal(t, []eventbus.EventType{eventbus.EventSelectionChanged, eventbus.EventComponentRemoved}, rec.types())
}

func TestRemoveWrapperIsIgnored(t *testing.T) {
	e, _ := newEditor(t, "A")
	e.Remove(e.Wrapper())
	assert.False(t, e.Wrapper().IsDestroyed())
}

func TestAddPublishesIndex(t *testing.T) {
	e, comps := newEditor(t, "A", "B")
	rec := &recorder{}
	rec.on(e.bus, eventbus.EventComponentAdded)

	clone := comps[0].Clone()
	e.Components().Add(clone, 1)

	require.Len(t, rec.events, 1)
	assert.Equal(t, 1, rec.events[0].(eventbus.ComponentAddedEvent).Index)
	assert.Same(t, clone, e.Find(clone.ID))
}

func TestStyleWriterCommitAndUndo(t *testing.T) {
	e, comps := newEditor(t, "A")
	c := comps[0]
	c.Style = domain.Style{"width": "4px"}
	rec := &recorder{}
	rec.on(e.bus, eventbus.EventStyleChanged, eventbus.EventHistoryChanged, eventbus.EventComponentUpdated)

	w := e.Styles().StyleWriter(c)
	w.SetStyle(domain.Style{"width": "6px"}, domain.SetStyleOptions{AvoidStore: true})
	w.SetStyle(domain.Style{"width": "8px"}, domain.SetStyleOptions{AvoidStore: true})
	assert.Empty(t, rec.events)
	assert.False(t, e.UndoManager().CanUndo())

	w.OnStyleChanged(w.GetStyle())
	assert.Equal(t, []eventbus.EventType{eventbus.EventStyleChanged, eventbus.EventComponentUpdated}, rec.types())
	require.True(t, e.UndoManager().CanUndo())

	require.True(t, e.UndoManager().Undo())
	assert.Equal(t, domain.Style{"width": "4px"}, c.Style)
	require.True(t, e.UndoManager().Redo())
	assert.Equal(t, domain.Style{"width": "8px"}, c.Style)
	assert.False(t, e.UndoManager().Redo())

	history := rec.events[2].(eventbus.HistoryChangedEvent)
	assert.Same(t, c, history.Component)
	assert.False(t, history.Redo)
}

func TestSetStyleWithoutAvoidStoreCommits(t *testing.T) {
	e, comps := newEditor(t, "A")
	w := e.Styles().StyleWriter(comps[0])

	w.SetStyle(domain.Style{"height": "2px"}, domain.SetStyleOptions{})

	assert.True(t, e.UndoManager().CanUndo())
}

func TestRecordSkipsNoop(t *testing.T) {
	u := NewUndoManager(eventbus.New(nil))
	u.Record(domain.NewComponent("x"), domain.Style{"a": "1"}, domain.Style{"a": "1"})
	assert.False(t, u.CanUndo())
}
