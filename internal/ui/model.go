package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"framegrip/internal/commands"
	"framegrip/internal/config"
	"framegrip/internal/coordinator"
	"framegrip/internal/geom"
)

// canvasTop is the host row of the frame; the title bar sits above it
const canvasTop = 1

// Model represents the UI state
type Model struct {
	c      *coordinator.Coordinator
	config *config.Config
	title  string
	logger *zap.Logger

	// UI-specific state
	width       int
	height      int
	styles      *Styles
	keys        keyMap
	help        help.Model
	viewport    viewport.Model
	status      string
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
	pager   *PagerOps
}

// NewModel creates a new UI model for a canvas session
func NewModel(c *coordinator.Coordinator, cfg *config.Config, title string, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		c:        c,
		config:   cfg,
		title:    title,
		logger:   logger.Named("ui"),
		styles:   NewStyles(),
		keys:     newKeyMap(cfg.Editor.CopyPaste),
		help:     help.New(),
		viewport: viewport.New(0, 0),
	}
	m.help.ShowAll = cfg.UISettings.ShowHelp
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			m.refresh()
			return m, cmd
		}

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("inspector pager failed", zap.Error(msg.err))
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
	}

	m.refresh()
	return m, nil
}

// resize records the window size and lays the frame out again
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.layout()
}

// layout places the frame between the title bar and the status and help
// lines
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	canvasHeight := max(m.height-canvasTop-1-helpHeight, 1)
	m.viewport.Width = m.width
	m.viewport.Height = canvasHeight
	m.c.SetViewport(geom.Point{Y: canvasTop}, float64(m.width), float64(canvasHeight))
}

func (m *Model) scrollStep() float64 {
	return float64(max(m.config.UISettings.ScrollStep, 1))
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := geom.Point{X: float64(msg.X), Y: float64(msg.Y)}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.c.ScrollBy(-m.scrollStep())
	case msg.Button == tea.MouseButtonWheelDown:
		m.c.ScrollBy(m.scrollStep())
	case msg.Action == tea.MouseActionMotion:
		m.c.PointerMove(p)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.c.Press(p) == coordinator.PressGrip {
			m.status = "resizing"
		}
	case msg.Action == tea.MouseActionRelease:
		if m.c.Dragging() {
			m.status = ""
		}
		m.c.Release(p)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case key.Matches(msg, m.keys.Undo):
		m.c.Undo()
	case key.Matches(msg, m.keys.Redo):
		m.c.Redo()
	case key.Matches(msg, m.keys.Parent):
		if err := m.c.Commands.Execute(commands.SelectParentName); err != nil {
			m.logger.Warn("select parent failed", zap.Error(err))
		}
	case key.Matches(msg, m.keys.ScrollUp):
		m.c.ScrollBy(-m.scrollStep())
	case key.Matches(msg, m.keys.ScrollDown):
		m.c.ScrollBy(m.scrollStep())
	case key.Matches(msg, m.keys.Inspect):
		return m.openInspector()
	default:
		if m.c.Key(msg.String()) {
			return nil
		}
		// ctrl+c quits unless it is bound to copy
		if msg.Type == tea.KeyCtrlC {
			return tea.Quit
		}
	}
	return nil
}

// openInspector returns a command that shows the component tree in the pager
func (m *Model) openInspector() tea.Cmd {
	content, err := InspectContent(m.c, m.styles)
	if err != nil {
		m.status = fmt.Sprintf("inspect failed: %v", err)
		return nil
	}
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

// refresh repaints the canvas into the viewport
func (m *Model) refresh() {
	if m.width == 0 {
		return
	}
	m.viewport.SetContent(Paint(m.c, m.styles).Render())
	m.viewport.SetYOffset(int(m.c.Geometry.Viewport().Scroll.Y))
}

// statusLine summarizes the selection state
func (m *Model) statusLine() string {
	snap := m.c.Snapshot()
	parts := []string{}
	if snap.Selected != "" {
		parts = append(parts, "selected "+snap.Selected)
		if snap.Style != "" {
			parts = append(parts, snap.Style)
		}
	}
	if snap.Hovered != "" {
		parts = append(parts, "hover "+snap.Hovered)
	}
	if snap.Focused {
		parts = append(parts, "editing")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if len(parts) == 0 {
		return "click an element to select it"
	}
	return strings.Join(parts, "  ")
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("framegrip " + m.title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
