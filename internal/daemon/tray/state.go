// Package tray implements the system tray icon and menu for tailtrayd.
package tray

import (
	"context"
	"time"

	"github.com/tailtray/tailtray/internal/applet"
	"github.com/tailtray/tailtray/internal/coordinator"
	"github.com/tailtray/tailtray/internal/models"
	"github.com/tailtray/tailtray/internal/prefs"
)

// TickInterval is how often the tray drains coordinator events.
const TickInterval = time.Second

// Controller is the coordinator as seen by the tray.
type Controller interface {
	Submit(cmd coordinator.Command) error
	Events() []coordinator.Event
}

// PrefsLoader reads the reconciled preference set.
type PrefsLoader interface {
	Load(ctx context.Context) (prefs.Set, error)
}

// Desktop performs peer actions outside the tray.
type Desktop interface {
	CopyIP(ip string) error
	SSH(target string) error
	OpenURL(url string) error
	Notify(title, message string) error
}

// Options wires the tray to the rest of the process.
type Options struct {
	Controller Controller
	Desktop    Desktop
	// State is the initial display state, usually seeded from a synchronous status query.
	State *applet.State
	// Prefs is the initial preference set used for menu check marks.
	Prefs prefs.Set
	// Loader rereads preferences after writes and successful polls; nil keeps
	// the check marks from Prefs and confirmed writes only.
	Loader   PrefsLoader
	Settings *models.Settings
	SSHUsers *models.SSHUsers
	// OnStart runs once the tray is ready; start the coordinator here.
	OnStart func()
	// OnExit runs when the tray exits.
	OnExit func()
}
