// Package applet holds the foreground display state fed by coordinator events.
//
// The state is owned by a single foreground goroutine (the tray loop or the
// TUI update loop). It never talks to the daemon: it only applies events in
// the order they were drained and tracks the hold-tick debounce that keeps
// result text visible for a few polls after a user action.
package applet

import (
	"fmt"

	"github.com/tailtray/tailtray/internal/coordinator"
	"github.com/tailtray/tailtray/internal/tailscale"
)

// Hold durations. StatusHoldTicks counts polls; CopiedHoldTicks counts
// foreground ticks (1s), about three polls at the default interval.
const (
	StatusHoldTicks = 3
	CopiedHoldTicks = 9
)

// Status messages.
const (
	MsgConnected     = "Connected"
	MsgDisconnected  = "Disconnected"
	MsgNotRunning    = "Not running"
	MsgConnecting    = "Connecting..."
	MsgDisconnecting = "Disconnecting..."
)

// State is the debounced display model.
type State struct {
	Connected      bool
	Toggling       bool
	StatusMessage  string
	Self           tailscale.Node
	TailnetName    string
	Peers          []tailscale.Peer
	ExitNodeActive bool
	Err            error
	CopiedIP       string

	statusHold int
	copiedHold int
}

// New returns the state shown before the first poll arrives.
func New() *State {
	return &State{StatusMessage: MsgDisconnected}
}

// NewFromStatus seeds the state from an initial synchronous status query.
// A failed query starts out disconnected without an error banner.
func NewFromStatus(st *tailscale.Status, err error) *State {
	s := New()
	if err != nil || st == nil {
		return s
	}
	s.applySnapshot(*st)
	s.StatusMessage = s.connectionMessage()
	return s
}

// SelfIP returns the local node's primary mesh address.
func (s *State) SelfIP() string {
	return s.Self.PrimaryIP()
}

// OnlineCount returns the number of online peers.
func (s *State) OnlineCount() int {
	n := 0
	for _, p := range s.Peers {
		if p.Online {
			n++
		}
	}
	return n
}

// Tick advances the foreground clock by one tick and applies the drained
// events in order.
func (s *State) Tick(events []coordinator.Event) {
	if s.copiedHold > 0 {
		s.copiedHold--
		if s.copiedHold == 0 {
			s.CopiedIP = ""
		}
	}
	for _, ev := range events {
		s.Apply(ev)
	}
}

// Apply folds one event into the state.
func (s *State) Apply(ev coordinator.Event) {
	switch ev := ev.(type) {
	case coordinator.StatusUpdate:
		if ev.Err != nil {
			s.Connected = false
			s.Err = ev.Err
			s.settle(MsgNotRunning)
			return
		}
		s.applySnapshot(ev.Status)
		s.Err = nil
		s.settle(s.connectionMessage())

	case coordinator.ToggleStarted:
		s.Toggling = true
		s.StatusMessage = s.pendingMessage()

	case coordinator.ToggleComplete:
		s.Toggling = false
		s.statusHold = StatusHoldTicks
		if ev.Err != nil {
			s.StatusMessage = "Error: " + tailscale.Diagnostic(ev.Err)
		} else {
			s.StatusMessage = ev.Message
		}

	case coordinator.PreferenceApplied:
		s.statusHold = StatusHoldTicks
		if ev.Err != nil {
			s.StatusMessage = "Error: " + tailscale.Diagnostic(ev.Err)
		} else {
			s.StatusMessage = fmt.Sprintf("%s updated", ev.Key.Label())
		}
	}
}

// BeginToggle reflects a user-initiated toggle before the coordinator picks it up.
func (s *State) BeginToggle() {
	s.Toggling = true
	s.StatusMessage = s.pendingMessage()
}

// MarkCopied shows copy feedback for ip for CopiedHoldTicks ticks.
func (s *State) MarkCopied(ip string) {
	s.CopiedIP = ip
	s.copiedHold = CopiedHoldTicks
}

// Holding reports whether a result message is still being held on screen.
func (s *State) Holding() bool {
	return s.statusHold > 0
}

// settle updates the steady-state message unless a result is being held or a
// toggle is in flight. Each poll consumes one hold tick.
func (s *State) settle(msg string) {
	if s.statusHold > 0 {
		s.statusHold--
		return
	}
	if !s.Toggling {
		s.StatusMessage = msg
	}
}

func (s *State) applySnapshot(st tailscale.Status) {
	s.Connected = st.BackendState.Running()
	s.Self = st.Self
	s.TailnetName = st.TailnetName
	s.Peers = st.Peers
	s.ExitNodeActive = st.ExitNodeActive
}

func (s *State) connectionMessage() string {
	if s.Connected {
		return MsgConnected
	}
	return MsgDisconnected
}

func (s *State) pendingMessage() string {
	if s.Connected {
		return MsgDisconnecting
	}
	return MsgConnecting
}

// Tooltip returns a one-line summary for tray tooltips and terminal titles.
func (s *State) Tooltip() string {
	if !s.Connected {
		return "Tailscale: " + s.StatusMessage
	}
	tip := fmt.Sprintf("Tailscale: %s (%d/%d peers online)", s.StatusMessage, s.OnlineCount(), len(s.Peers))
	if s.TailnetName != "" {
		tip += " on " + s.TailnetName
	}
	return tip
}
