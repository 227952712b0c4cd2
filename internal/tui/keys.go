package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Left        key.Binding
	Right       key.Binding
	ToggleTheme key.Binding
	Reset       key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Next:        key.NewBinding(key.WithKeys("tab", "down", "enter"), key.WithHelp("tab", "next")),
	Prev:        key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "option")),
	Right:       key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→", "option")),
	ToggleTheme: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
	Reset:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Right, k.ToggleTheme, k.Reset, k.Quit}
}
