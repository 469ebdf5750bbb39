package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the suggestion box. Letters are left to the
// text input, so navigation uses arrows and ctrl chords only.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// HelpLine renders the bindings as a single hint line
func (k KeyMap) HelpLine() string {
	bindings := []key.Binding{k.Up, k.Down, k.Select, k.Quit}
	s := ""
	for i, b := range bindings {
		if i > 0 {
			s += " • "
		}
		h := b.Help()
		s += h.Key + " " + h.Desc
	}
	return s
}
