package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	tab      key.Binding
	submit   key.Binding
	connect  key.Binding
	start    key.Binding
	library  key.Binding
	newEntry key.Binding
	open     key.Binding
	theme    key.Binding
	logout   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
		submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "analyze")),
		connect:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect spotify")),
		start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		library:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "playlists")),
		newEntry: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in spotify")),
		theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.tab, k.submit, k.connect, k.start},
		{k.library, k.newEntry, k.open, k.theme},
		{k.logout, k.quit},
	}
}
