package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	next     key.Binding
	submit   key.Binding
	synopsis key.Binding
	genre    key.Binding
	director key.Binding
	favorite key.Binding
	profile  key.Binding
	logout   key.Binding
	back     key.Binding
	quit     key.Binding
	forceQ   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		next:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in")),
		synopsis: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "synopsis")),
		genre:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "genre")),
		director: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "director")),
		favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		logout:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "logout")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQ:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.synopsis},
		{k.genre, k.director, k.favorite},
		{k.profile, k.logout, k.back, k.quit},
	}
}
