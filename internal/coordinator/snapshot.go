package coordinator

import (
	"fmt"

	"framegrip/internal/domain"
	"framegrip/internal/overlay"
)

// Snapshot is a flat, printable view of the canvas state
type Snapshot struct {
	Step        int      `toml:"step,omitempty"`
	Action      string   `toml:"action,omitempty"`
	Selected    string   `toml:"selected"`
	Hovered     string   `toml:"hovered"`
	Clipboard   string   `toml:"clipboard"`
	Components  int      `toml:"components"`
	Style       string   `toml:"style"`
	Dragging    bool     `toml:"dragging"`
	Focused     bool     `toml:"focused"`
	BodyClass   []string `toml:"body_class"`
	Badge       string   `toml:"badge"`
	Highlighter string   `toml:"highlighter"`
	HoverOffset string   `toml:"hover_offset"`
	FixedOffset string   `toml:"fixed_offset"`
	Toolbar     string   `toml:"toolbar"`
	Grips       int      `toml:"grips"`
}

// describeElement renders an overlay as "content@top,left WxH", or "" when hidden
func describeElement(el *overlay.Element) string {
	if !el.Visible() {
		return ""
	}
	return fmt.Sprintf("%s@%g,%g %gx%g", el.Content, el.Top, el.Left, el.Width, el.Height)
}

// Snapshot captures the current state
func (c *Coordinator) Snapshot() Snapshot {
	st := c.Selector.State()
	ov := c.Selector.Overlays()

	s := Snapshot{
		Selected:    Describe(st.Selected),
		Hovered:     Describe(c.Registry.ResolveModel(st.Hovered)),
		Clipboard:   Describe(st.Clipboard),
		Dragging:    st.Dragging,
		Focused:     c.Document.ActiveElementEditable(),
		BodyClass:   c.Document.BodyClasses(),
		Badge:       describeElement(ov.Badge()),
		Highlighter: describeElement(ov.Highlighter()),
		HoverOffset: describeElement(ov.OffsetViewer(overlay.ModeHover).Element),
		FixedOffset: describeElement(ov.OffsetViewer(overlay.ModeFixed).Element),
		Toolbar:     describeElement(c.Selector.Toolbar().Element()),
	}
	if st.Selected != nil {
		s.Style = st.Selected.Style.String()
	}
	if r := c.Selector.Resize().Resizer(); r != nil {
		s.Grips = len(r.Grips())
	}
	c.Editor.Wrapper().Walk(func(*domain.Component) { s.Components++ })
	s.Components-- // wrapper
	return s
}
