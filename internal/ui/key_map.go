package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	add   key.Binding
	back  key.Binding
	next  key.Binding
	prev  key.Binding
	save  key.Binding
	sell  key.Binding
	edit  key.Binding
	del   key.Binding
	yes   key.Binding
	no    key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		add:   key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a/+", "add item")),
		back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		next:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		save:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		sell:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sell")),
		edit:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		del:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		yes:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.add},
		{k.next, k.prev, k.save, k.back},
		{k.sell, k.edit, k.del},
		{k.yes, k.no, k.quit},
	}
}
