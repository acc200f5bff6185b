package coordinator

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/tailtray/tailtray/internal/prefs"
)

// Command is a mutating operation queued for the coordinator.
// New operations implement Execute; the coordinator loop does not change.
type Command interface {
	CommandID() uuid.UUID
	Execute(ctx context.Context, env *Env)
}

// Env is what a command may use while it executes.
type Env struct {
	Daemon Daemon
	Prefs  PreferenceWriter
	emit   func(Event)
}

// Emit publishes an event to the foreground.
func (e *Env) Emit(ev Event) {
	e.emit(ev)
}

// Toggle connects when the daemon is not running and disconnects when it is.
type Toggle struct {
	ID uuid.UUID
}

// NewToggle creates a toggle command with a fresh ID.
func NewToggle() Toggle {
	return Toggle{ID: uuid.New()}
}

// CommandID implements Command.
func (t Toggle) CommandID() uuid.UUID { return t.ID }

// Execute decides on fresh daemon state, never on what the foreground last saw:
// another client may have toggled the daemon in between.
func (t Toggle) Execute(ctx context.Context, env *Env) {
	env.Emit(ToggleStarted{CommandID: t.ID})

	running := false
	st, err := env.Daemon.Status(ctx)
	if err != nil {
		log.Printf("Toggle %s: status check failed, treating daemon as stopped: %v", t.ID, err)
	} else {
		running = st.BackendState.Running()
	}

	var msg string
	if running {
		msg, err = env.Daemon.Disconnect(ctx)
	} else {
		msg, err = env.Daemon.Connect(ctx)
	}

	env.Emit(ToggleComplete{CommandID: t.ID, Message: msg, Err: err})
}

// SetPreference writes one reconciled preference.
type SetPreference struct {
	ID    uuid.UUID
	Key   prefs.Key
	Value any
}

// NewSetPreference creates a preference command with a fresh ID.
func NewSetPreference(key prefs.Key, value any) SetPreference {
	return SetPreference{ID: uuid.New(), Key: key, Value: value}
}

// CommandID implements Command.
func (s SetPreference) CommandID() uuid.UUID { return s.ID }

// Execute implements Command.
func (s SetPreference) Execute(ctx context.Context, env *Env) {
	var err error
	if env.Prefs == nil {
		err = errors.New("preferences are not available")
	} else {
		err = env.Prefs.Apply(ctx, s.Key, s.Value)
	}
	env.Emit(PreferenceApplied{CommandID: s.ID, Key: s.Key, Err: err})
}
