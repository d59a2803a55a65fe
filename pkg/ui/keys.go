package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the navigator's key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Detail      key.Binding
	Collapse    key.Binding
	Clear       key.Binding
	PrimaryOnly key.Binding
	NextView    key.Binding
	PrevView    key.Binding
	Yank        key.Binding
	EdgeFilter  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Detail: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "details"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "fold unit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear selection"),
		),
		PrimaryOnly: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "primary only"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy event ref"),
		),
		EdgeFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle edge filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.NextView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Detail, k.Collapse},
		{k.Clear, k.PrimaryOnly, k.Yank, k.EdgeFilter},
		{k.NextView, k.PrevView, k.Help, k.Quit},
	}
}
