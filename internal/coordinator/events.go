package coordinator

import (
	"github.com/google/uuid"

	"github.com/tailtray/tailtray/internal/prefs"
	"github.com/tailtray/tailtray/internal/tailscale"
)

// Event is a result published by the coordinator to the foreground.
// Events are delivered in emission order.
type Event interface {
	EventName() string
}

// StatusUpdate carries the outcome of one poll. Exactly one of Status/Err is
// meaningful: Err non-nil means the daemon was unreachable or answered
// garbage, and Status is the zero value.
type StatusUpdate struct {
	Status tailscale.Status
	Err    error
}

// ToggleStarted is emitted before a toggle touches the daemon.
type ToggleStarted struct {
	CommandID uuid.UUID
}

// ToggleComplete is emitted after the toggle's connect or disconnect returned.
// Message is "Connected" or "Disconnected" on success.
type ToggleComplete struct {
	CommandID uuid.UUID
	Message   string
	Err       error
}

// PreferenceApplied is emitted after a SetPreference command ran.
type PreferenceApplied struct {
	CommandID uuid.UUID
	Key       prefs.Key
	Err       error
}

func (StatusUpdate) EventName() string      { return "status_update" }
func (ToggleStarted) EventName() string     { return "toggle_started" }
func (ToggleComplete) EventName() string    { return "toggle_complete" }
func (PreferenceApplied) EventName() string { return "preference_applied" }
