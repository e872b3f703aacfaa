package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Status      lipgloss.Style
	Dim         lipgloss.Style
	Element     lipgloss.Style
	Text        lipgloss.Style
	Highlighter lipgloss.Style
	Badge       lipgloss.Style
	Selected    lipgloss.Style
	Offset      lipgloss.Style
	Grip        lipgloss.Style
	Section     lipgloss.Style
	Key         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Element:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlighter: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Offset:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Grip:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Key:         lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
}
