package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Toggle    key.Binding
	Members   key.Binding
	Comments  key.Binding
	ExpandAll key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
		Toggle:    key.NewBinding(key.WithKeys("enter", " ", "za"), key.WithHelp("enter", "toggle fold")),
		Members:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "collapse members")),
		Comments:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse comments")),
		ExpandAll: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "expand all")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Members, k.Comments, k.ExpandAll, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Toggle, k.Members, k.Comments, k.ExpandAll},
		{k.Help, k.Quit},
	}
}
