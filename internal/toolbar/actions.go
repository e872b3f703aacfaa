package toolbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"framegrip/internal/domain"
)

// Actions is the collection behind the toolbar view
type Actions struct {
	items  []domain.ActionSpec
	resets int
}

// NewActions creates an empty collection
func NewActions() *Actions {
	return &Actions{}
}

// Reset replaces the collection contents
func (a *Actions) Reset(items []domain.ActionSpec) {
	a.items = append(a.items[:0:0], items...)
	a.resets++
}

// Items returns the actions in order
func (a *Actions) Items() []domain.ActionSpec {
	return append([]domain.ActionSpec(nil), a.items...)
}

// Len returns the number of actions
func (a *Actions) Len() int { return len(a.items) }

// Resets returns how many times the contents were replaced
func (a *Actions) Resets() int { return a.resets }

// View renders an action collection into the toolbar container
type View interface {
	Render() string
}

// ViewFactory builds the view for a collection
type ViewFactory func(actions *Actions) View

// Button is one laid out toolbar button
type Button struct {
	Action domain.ActionSpec
	Text   string
	X      int // cell offset from the toolbar's left edge
	Width  int
}

// ButtonsView lays actions out as a single row of buttons
type ButtonsView struct {
	actions *Actions
	Style   lipgloss.Style
}

// NewButtonsView is the default ViewFactory
func NewButtonsView(actions *Actions) View {
	return &ButtonsView{
		actions: actions,
		Style: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")),
	}
}

// label returns the button text for an action
func label(a domain.ActionSpec) string {
	if a.Label != "" {
		return a.Label
	}
	return a.Command
}

// Buttons returns the current layout
func (v *ButtonsView) Buttons() []Button {
	var buttons []Button
	x := 0
	for _, a := range v.actions.Items() {
		text := " " + label(a) + " "
		w := runewidth.StringWidth(text)
		buttons = append(buttons, Button{Action: a, Text: text, X: x, Width: w})
		x += w
	}
	return buttons
}

// Render returns the plain text of the button row
func (v *ButtonsView) Render() string {
	var sb strings.Builder
	for _, b := range v.Buttons() {
		sb.WriteString(b.Text)
	}
	return sb.String()
}

// ButtonAt returns the button covering cell offset x
func (v *ButtonsView) ButtonAt(x int) (Button, bool) {
	for _, b := range v.Buttons() {
		if x >= b.X && x < b.X+b.Width {
			return b, true
		}
	}
	return Button{}, false
}
