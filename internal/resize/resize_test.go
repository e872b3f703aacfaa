package resize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
	"framegrip/internal/frame"
	"framegrip/internal/geom"
)

type node string

func (n node) NodeName() string { return string(n) }

type fakeCoords struct {
	boxes map[frame.Node]geom.Box
	scale float64
}

func (f *fakeCoords) BoxOf(n frame.Node) geom.Box { return f.boxes[n] }
func (f *fakeCoords) Scale() float64              { return f.scale }

type fakeWriter struct {
	style     domain.Style
	sets      []domain.Style
	opts      []domain.SetStyleOptions
	committed []domain.Style
}

func (w *fakeWriter) GetStyle() domain.Style { return w.style.Clone() }

func (w *fakeWriter) SetStyle(s domain.Style, opts domain.SetStyleOptions) {
	w.style = s
	w.sets = append(w.sets, s)
	w.opts = append(w.opts, opts)
}

func (w *fakeWriter) OnStyleChanged(s domain.Style) { w.committed = append(w.committed, s) }

type fakeStyles struct{ w *fakeWriter }

func (f fakeStyles) StyleWriter(*domain.Component) domain.StyleWriter { return f.w }

type fakeBody map[string]bool

func (b fakeBody) ToggleBodyClass(class string, on bool) { b[class] = on }

type fixture struct {
	ctrl       *Controller
	bus        eventbus.EventBus
	coords     *fakeCoords
	writer     *fakeWriter
	body       fakeBody
	suppressed []bool
	model      *domain.Component
	node       node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bus:    eventbus.New(nil),
		node:   node("div"),
		writer: &fakeWriter{style: domain.Style{}},
		body:   fakeBody{},
		model:  domain.NewComponent("default"),
	}
	f.model.Resizable.Enabled = true
	f.coords = &fakeCoords{
		boxes: map[frame.Node]geom.Box{f.node: {Top: 2, Left: 4, Width: 10, Height: 5}},
		scale: 1,
	}
	cfg := Config{
		StylePrefix: "gjs-",
		Suppress:    func(on bool) { f.suppressed = append(f.suppressed, on) },
	}
	f.ctrl = NewController(cfg, f.bus, f.coords, fakeStyles{f.writer}, f.body, nil)
	return f
}

func TestUpdateTargetAxisLock(t *testing.T) {
	tests := []struct {
		handle Handle
		want   domain.Style
	}{
		{HandleTC, domain.Style{"height": "100px"}},
		{HandleBC, domain.Style{"height": "100px"}},
		{HandleCR, domain.Style{"width": "200px"}},
		{HandleCL, domain.Style{"width": "200px"}},
		{HandleBR, domain.Style{"width": "200px", "height": "100px"}},
		{HandleTL, domain.Style{"width": "200px", "height": "100px"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.handle), func(t *testing.T) {
			f := newFixture(t)
			s := &DragSession{Target: f.model, Writer: f.writer, Style: domain.Style{}}

			f.ctrl.updateTarget(s, geom.Box{Width: 200, Height: 100}, UpdateOptions{Handle: tt.handle})

			require.Len(t, f.writer.sets, 1)
			if diff := cmp.Diff(tt.want, f.writer.sets[0]); diff != "" {
				t.Errorf("style mismatch (-want +got):\n%s", diff)
			}
			assert.True(t, f.writer.opts[0].AvoidStore)
			assert.Empty(t, f.writer.committed)
		})
	}
}

func TestUpdateTargetStoreCommits(t *testing.T) {
	f := newFixture(t)
	var updated []*domain.Component
	f.bus.Subscribe(eventbus.EventTargetStyleUpdated, func(e eventbus.DomainEvent) {
		updated = append(updated, e.(eventbus.TargetStyleUpdatedEvent).Component)
	})
	s := &DragSession{Target: f.model, Writer: f.writer, Style: domain.Style{"color": "red"}}

	f.ctrl.updateTarget(s, geom.Box{Width: 3, Height: 4}, UpdateOptions{Store: true, Handle: HandleBR})

	require.Len(t, f.writer.committed, 1)
	assert.Equal(t, domain.Style{"color": "red", "width": "3px", "height": "4px"}, f.writer.committed[0])
	assert.Equal(t, []*domain.Component{f.model}, updated)
}

func TestUpdateTargetWithoutWriterIsNoop(t *testing.T) {
	f := newFixture(t)
	f.ctrl.updateTarget(&DragSession{}, geom.Box{Width: 1, Height: 1}, UpdateOptions{})
	assert.Empty(t, f.writer.sets)
}

func TestInitResizeRequiresResizable(t *testing.T) {
	f := newFixture(t)
	f.model.Resizable = domain.Resizable{}

	assert.False(t, f.ctrl.InitResize(f.model, f.node))
	assert.Nil(t, f.ctrl.Resizer())
}

func TestDragLifecycle(t *testing.T) {
	f := newFixture(t)
	moves := 0
	f.bus.Subscribe(eventbus.EventCanvasOffsetChanged, func(eventbus.DomainEvent) { moves++ })
	require.True(t, f.ctrl.InitResize(f.model, f.node))
	r := f.ctrl.Resizer()

	h, ok := r.HandleAt(geom.Point{X: 13, Y: 6})
	require.True(t, ok)
	require.Equal(t, HandleBR, h)

	require.True(t, r.Start(h, geom.Point{X: 13, Y: 6}))
	assert.True(t, f.body["gjs-resizing"])
	assert.Equal(t, []bool{true}, f.suppressed)
	assert.True(t, r.Session().SuppressOffsets)

	r.Move(geom.Point{X: 16, Y: 8})
	assert.Equal(t, domain.Style{"width": "13px", "height": "7px"}, f.writer.style)
	assert.Equal(t, 1, moves)
	assert.Empty(t, f.writer.committed)

	r.End()
	assert.False(t, r.Active())
	assert.False(t, f.body["gjs-resizing"])
	assert.Equal(t, []bool{true, false}, f.suppressed)
	assert.Equal(t, 2, moves)
	require.Len(t, f.writer.committed, 1)
	assert.Equal(t, domain.Style{"width": "13px", "height": "7px"}, f.writer.committed[0])
}

func TestLeftTopHandlesKeepOppositeEdges(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.ctrl.InitResize(f.model, f.node))
	r := f.ctrl.Resizer()

	require.True(t, r.Start(HandleTL, geom.Point{X: 4, Y: 2}))
	r.Move(geom.Point{X: 6, Y: 3})

	assert.Equal(t, geom.Box{Top: 3, Left: 6, Width: 8, Height: 4}, r.Session().Rect)
}

func TestModelOptionsOverrideDefaults(t *testing.T) {
	f := newFixture(t)
	f.model.Resizable = domain.Resizable{Options: &domain.ResizeOptions{
		Handles: []string{"tc", "bc"},
		MinDim:  2,
		Step:    2,
		Unit:    "ch",
	}}
	require.True(t, f.ctrl.InitResize(f.model, f.node))
	r := f.ctrl.Resizer()

	assert.Len(t, r.Grips(), 2)
	assert.False(t, r.Start(HandleCR, geom.Point{X: 13, Y: 4}))

	h, ok := r.HandleAt(geom.Point{X: 8, Y: 6})
	require.True(t, ok)
	require.Equal(t, HandleBC, h)
	require.True(t, r.Start(h, geom.Point{X: 8, Y: 6}))
	r.Move(geom.Point{X: 8, Y: -4})

	assert.Equal(t, domain.Style{"height": "2ch"}, f.writer.style)
}

func TestModelHooksReplaceDefaults(t *testing.T) {
	f := newFixture(t)
	var rects []geom.Box
	other := domain.NewComponent("default")
	other.Resizable.Enabled = true
	f.ctrl.cfg.ModelHooks = func(m *domain.Component) Hooks {
		if m != f.model {
			return Hooks{}
		}
		return Hooks{UpdateTarget: func(_ *DragSession, rect geom.Box, _ UpdateOptions) {
			rects = append(rects, rect)
		}}
	}
	require.True(t, f.ctrl.InitResize(f.model, f.node))
	r := f.ctrl.Resizer()

	require.True(t, r.Start(HandleBR, geom.Point{X: 13, Y: 6}))
	r.Move(geom.Point{X: 16, Y: 8})
	r.End()

	assert.Equal(t, []geom.Box{
		{Top: 2, Left: 4, Width: 13, Height: 7},
		{Top: 2, Left: 4, Width: 13, Height: 7},
	}, rects)
	assert.Empty(t, f.writer.sets)
	assert.Empty(t, f.writer.committed)
	assert.Equal(t, []bool{true, false}, f.suppressed)

	f.coords.boxes[node("other")] = geom.Box{Width: 3, Height: 3}
	require.True(t, f.ctrl.InitResize(other, node("other")))
	r = f.ctrl.Resizer()
	require.True(t, r.Start(HandleBR, geom.Point{X: 2, Y: 2}))
	r.Move(geom.Point{X: 4, Y: 2})
	assert.Equal(t, domain.Style{"width": "5px", "height": "3px"}, f.writer.style)
}

func TestZoomConvertsToContentUnits(t *testing.T) {
	f := newFixture(t)
	f.coords.scale = 2
	require.True(t, f.ctrl.InitResize(f.model, f.node))
	r := f.ctrl.Resizer()

	require.True(t, r.Start(HandleCR, geom.Point{X: 13, Y: 4}))
	r.Move(geom.Point{X: 15, Y: 4})

	assert.Equal(t, domain.Style{"width": "6px"}, f.writer.style)
}

func TestInitResizeReplacesPreviousSession(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.ctrl.InitResize(f.model, f.node))
	first := f.ctrl.Resizer()
	require.True(t, first.Start(HandleBR, geom.Point{X: 13, Y: 6}))

	require.True(t, f.ctrl.InitResize(f.model, f.node))

	assert.False(t, first.Active())
	assert.NotSame(t, first, f.ctrl.Resizer())
	assert.Equal(t, []bool{true, false}, f.suppressed)
	assert.False(t, f.body["gjs-resizing"])
}

func TestHistoryChangeRefreshesRect(t *testing.T) {
	f := newFixture(t)
	unsubscribe := f.ctrl.Subscribe()
	defer unsubscribe()
	require.True(t, f.ctrl.InitResize(f.model, f.node))

	f.coords.boxes[f.node] = geom.Box{Top: 2, Left: 4, Width: 20, Height: 5}
	f.bus.Publish(eventbus.HistoryChangedEvent{Component: f.model})

	assert.Equal(t, 20.0, f.ctrl.Resizer().Box().Width)
}
