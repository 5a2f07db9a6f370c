package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTheme key.Binding
	PrevTheme key.Binding
	Retry     key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	NextTheme: key.NewBinding(key.WithKeys("right", "l", "t"), key.WithHelp("→/t", "next theme")),
	PrevTheme: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev theme")),
	Retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy summary")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.PrevTheme, k.NextTheme, k.Help}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTheme, k.NextTheme},
		{k.Retry, k.Copy},
		{k.Help, k.Quit},
	}
}
