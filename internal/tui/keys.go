package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the preview.
type KeyMap struct {
	// Panel settings
	Anchor     key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	Background key.Binding
	Reset      key.Binding

	// Actions
	CopyJSON key.Binding
	CopyYAML key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Anchor, k.Grow, k.Shrink, k.Background, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Anchor, k.Grow, k.Shrink, k.Background, k.Reset},
		{k.CopyJSON, k.CopyYAML},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Anchor: key.NewBinding(
			key.WithKeys("a", "tab"),
			key.WithHelp("a/tab", "next anchor"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "=", "up", "k"),
			key.WithHelp("+/↑", "larger"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-", "down", "j"),
			key.WithHelp("-/↓", "smaller"),
		),
		Background: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "next background"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		CopyJSON: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy as JSON"),
		),
		CopyYAML: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy as YAML"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
