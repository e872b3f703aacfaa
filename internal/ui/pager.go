package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"framegrip/internal/coordinator"
	"framegrip/internal/domain"
)

// InspectContent renders the component tree and the current document
func InspectContent(c *coordinator.Coordinator, st *Styles) (string, error) {
	var b strings.Builder

	b.WriteString(st.Title.Render("Components"))
	b.WriteString("\n\n")
	var walk func(m *domain.Component, depth int)
	walk = func(m *domain.Component, depth int) {
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), m.GetName(), st.Dim.Render("["+m.Type+"]"))
		if id := m.Attributes["id"]; id != "" {
			line += " " + st.Key.Render("#"+id)
		}
		if m.IsSelected() {
			line += " " + st.Selected.Render("selected")
		}
		if len(m.Style) > 0 {
			line += " " + st.Offset.Render(m.Style.String())
		}
		b.WriteString(line)
		b.WriteString("\n")
		for _, child := range m.Components.All() {
			walk(child, depth+1)
		}
	}
	walk(c.Editor.Wrapper(), 0)

	b.WriteString("\n")
	b.WriteString(st.Section.Render("Document"))
	b.WriteString("\n\n")
	if err := c.Document.Render(&b); err != nil {
		return "", err
	}
	b.WriteString("\n")
	return b.String(), nil
}

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// ShowInPager shows content using ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
