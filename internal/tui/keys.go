package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active.
type GlobalKeys struct {
	Quit   key.Binding
	Help   key.Binding
	Tab    key.Binding
	Toggle key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch panel"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "connect/disconnect"),
	),
}

// PeerKeys are active when the peer list is focused.
type PeerKeys struct {
	Up    key.Binding
	Down  key.Binding
	Copy  key.Binding
	SSH   key.Binding
	User  key.Binding
	Admin key.Binding
}

var peerKeys = PeerKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c", "y"),
		key.WithHelp("c", "copy IP"),
	),
	SSH: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "ssh"),
	),
	User: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "ssh user"),
	),
	Admin: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "admin console"),
	),
}

// PrefKeys are active when the preferences panel is focused.
type PrefKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Edit   key.Binding
}

var prefKeys = PrefKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "toggle"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "edit"),
	),
}

// InputKeys are active while a text input has focus.
type InputKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var inputKeys = InputKeys{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}
