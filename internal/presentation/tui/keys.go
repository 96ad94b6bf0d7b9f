package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the terminal view.
type KeyMap struct {
	Submit      key.Binding
	HistoryUp   key.Binding
	HistoryDown key.Binding
	ClearScreen key.Binding
	Backspace   key.Binding
	Quit        key.Binding
}

// DefaultKeyMap mirrors a conventional shell.
var DefaultKeyMap = KeyMap{
	Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	HistoryUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous command")),
	HistoryDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next command")),
	ClearScreen: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear screen")),
	Backspace:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+d", "quit")),
}
