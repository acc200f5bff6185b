// Package tui implements the interactive terminal view for tailtray.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tailtray/tailtray/internal/applet"
	"github.com/tailtray/tailtray/internal/coordinator"
	"github.com/tailtray/tailtray/internal/models"
	"github.com/tailtray/tailtray/internal/prefs"
)

// Controller is the coordinator as seen by the TUI.
type Controller interface {
	Submit(cmd coordinator.Command) error
	Events() []coordinator.Event
}

// PrefsLoader reads the reconciled preference set.
type PrefsLoader interface {
	Load(ctx context.Context) (prefs.Set, error)
}

// Desktop performs actions outside the terminal.
type Desktop interface {
	CopyIP(ip string) error
	OpenURL(url string) error
}

// Options wires the TUI to a running coordinator.
type Options struct {
	Controller Controller
	Prefs      PrefsLoader
	Desktop    Desktop
	State      *applet.State
	Settings   *models.Settings
	SSHUsers   *models.SSHUsers
	// SaveSSHUser persists a per-host SSH username; an empty user removes it.
	SaveSSHUser func(host, user string) error
}

// Run launches the TUI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
