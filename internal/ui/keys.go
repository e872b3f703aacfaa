package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the help line
type keyMap struct {
	Copy       key.Binding
	Paste      key.Binding
	Delete     key.Binding
	Blur       key.Binding
	Parent     key.Binding
	Undo       key.Binding
	Redo       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Inspect    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap(copyPaste bool) keyMap {
	km := keyMap{
		Copy:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Paste:      key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Delete:     key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "remove")),
		Blur:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave text")),
		Parent:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "select parent")),
		Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:       key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "redo")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Inspect:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
	km.Copy.SetEnabled(copyPaste)
	km.Paste.SetEnabled(copyPaste)
	return km
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Delete, k.Undo, k.Inspect, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Copy, k.Paste, k.Delete, k.Blur},
		{k.Parent, k.Undo, k.Redo},
		{k.ScrollUp, k.ScrollDown},
		{k.Inspect, k.Help, k.Quit},
	}
}
