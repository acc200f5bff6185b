package tui

import "github.com/tailtray/tailtray/internal/prefs"

// TickMsg is the foreground tick: coordinator events are drained on each one.
type TickMsg struct{}

// PrefsLoadedMsg carries a fresh preference read.
type PrefsLoadedMsg struct {
	Set prefs.Set
	Err error
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// SSHFinishedMsg is sent when an ssh session handed the terminal back.
type SSHFinishedMsg struct {
	Err error
}

// SSHUserSavedMsg signals a per-host SSH username was stored.
type SSHUserSavedMsg struct {
	Host string
	User string
}
