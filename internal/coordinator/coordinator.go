// Package coordinator polls the daemon on a fixed interval and serializes
// every mutating command through a single background loop.
//
// The foreground talks to the loop through two one-way paths: Submit hands
// over at most one pending command, and Events drains the results in the
// order they were produced. Neither side ever blocks on the other.
package coordinator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tailtray/tailtray/internal/prefs"
	"github.com/tailtray/tailtray/internal/tailscale"
)

// DefaultInterval is the poll period.
const DefaultInterval = 3 * time.Second

// ErrCommandPending is returned by Submit while another command is queued or running.
var ErrCommandPending = errors.New("a command is already pending")

// Daemon is the subset of the daemon client the coordinator drives.
type Daemon interface {
	Status(ctx context.Context) (*tailscale.Status, error)
	Connect(ctx context.Context) (string, error)
	Disconnect(ctx context.Context) (string, error)
}

// PreferenceWriter applies reconciled preference changes.
type PreferenceWriter interface {
	Apply(ctx context.Context, key prefs.Key, value any) error
}

// Coordinator owns the status snapshot lifecycle and the command slot.
type Coordinator struct {
	daemon   Daemon
	prefs    PreferenceWriter
	interval time.Duration

	commands chan Command
	busy     atomic.Bool

	mu    sync.Mutex
	queue []Event
	ready chan struct{}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithInterval sets the poll period. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithPreferences enables SetPreference commands.
func WithPreferences(p PreferenceWriter) Option {
	return func(c *Coordinator) { c.prefs = p }
}

// New creates a coordinator. Call Run to start polling.
func New(daemon Daemon, opts ...Option) *Coordinator {
	c := &Coordinator{
		daemon:   daemon,
		interval: DefaultInterval,
		commands: make(chan Command, 1),
		ready:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Interval returns the poll period.
func (c *Coordinator) Interval() time.Duration {
	return c.interval
}

// Submit hands a command to the loop without blocking. Only one command may be
// outstanding; while it is queued or executing, Submit rejects new commands
// with ErrCommandPending.
func (c *Coordinator) Submit(cmd Command) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrCommandPending
	}
	// The slot is empty whenever busy was false.
	c.commands <- cmd
	return nil
}

// Busy reports whether a command is queued or executing.
func (c *Coordinator) Busy() bool {
	return c.busy.Load()
}

// Events drains every event produced so far, oldest first. It never blocks.
func (c *Coordinator) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	evs := c.queue
	c.queue = nil
	return evs
}

// Ready is signalled when new events are queued. Several emissions may share
// one signal, so consumers always drain with Events.
func (c *Coordinator) Ready() <-chan struct{} {
	return c.ready
}

// Run polls until ctx is cancelled. The first cycle runs immediately.
func (c *Coordinator) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		c.Step(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Step runs one cycle: at most one pending command to completion, then a
// status poll whose result is published whether it succeeded or not.
func (c *Coordinator) Step(ctx context.Context) {
	select {
	case cmd := <-c.commands:
		c.execute(ctx, cmd)
	default:
	}

	st, err := c.daemon.Status(ctx)
	if err != nil {
		c.emit(StatusUpdate{Err: err})
		return
	}
	c.emit(StatusUpdate{Status: *st})
}

func (c *Coordinator) execute(ctx context.Context, cmd Command) {
	defer c.busy.Store(false)

	env := &Env{Daemon: c.daemon, Prefs: c.prefs, emit: c.emit}
	cmd.Execute(ctx, env)
}

func (c *Coordinator) emit(ev Event) {
	c.mu.Lock()
	c.queue = append(c.queue, ev)
	c.mu.Unlock()

	select {
	case c.ready <- struct{}{}:
	default:
	}
}
