// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit       key.Binding
	SwitchView key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Confirm    key.Binding

	// RSVP form
	Coming    key.Binding
	NotComing key.Binding

	// guest list
	Up        key.Binding
	Down      key.Binding
	Delete    key.Binding
	ClearForm key.Binding
	Reload    key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
	SwitchView: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "switch view"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous field"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Coming: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "coming"),
	),
	NotComing: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "not coming"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "delete guest"),
	),
	ClearForm: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "clear form"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "reload"),
	),
}
