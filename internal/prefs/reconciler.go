// Package prefs reconciles the daemon's raw preferences with a flat set of
// independently togglable settings.
//
// The daemon has no "advertise exit node" boolean. It is inferred from, and
// written through, the advertised-route list containing the universal-default
// routes. AdvertiseExitNode is therefore derived on every read and recomputed
// from fresh daemon state on every write; it is never stored.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tailtray/tailtray/internal/tailscale"
)

// ErrUnknownKey is returned for keys the reconciler does not know.
var ErrUnknownKey = errors.New("unknown preference key")

// Set is the reconciled, flat preference view.
type Set struct {
	AcceptDNS         bool   `json:"accept_dns"`
	AcceptRoutes      bool   `json:"accept_routes"`
	ShieldsUp         bool   `json:"shields_up"`
	RunSSH            bool   `json:"ssh"`
	AdvertiseExitNode bool   `json:"advertise_exit_node"`
	ExitNodeAllowLAN  bool   `json:"exit_node_allow_lan"`
	WebClient         bool   `json:"webclient"`
	Hostname          string `json:"hostname"`
	AdvertiseRoutes   string `json:"advertise_routes"`
	LoginName         string `json:"login_name"`
}

// FromRaw is the read path: it derives the flat set from daemon prefs.
func FromRaw(p tailscale.Prefs) Set {
	return Set{
		AcceptDNS:         p.CorpDNS,
		AcceptRoutes:      p.RouteAll,
		ShieldsUp:         p.ShieldsUp,
		RunSSH:            p.RunSSH,
		AdvertiseExitNode: HasExitNode(p.AdvertiseRoutes),
		ExitNodeAllowLAN:  p.ExitNodeAllowLANAccess,
		WebClient:         p.RunWebClient,
		Hostname:          p.Hostname,
		AdvertiseRoutes:   JoinRoutes(StripDefaults(p.AdvertiseRoutes)),
		LoginName:         p.LoginName,
	}
}

// Value returns the value stored under key: a bool for boolean keys, a string otherwise.
func (s Set) Value(key Key) (any, error) {
	switch key {
	case KeyAcceptDNS:
		return s.AcceptDNS, nil
	case KeyAcceptRoutes:
		return s.AcceptRoutes, nil
	case KeyShieldsUp:
		return s.ShieldsUp, nil
	case KeySSH:
		return s.RunSSH, nil
	case KeyAdvertiseExitNode:
		return s.AdvertiseExitNode, nil
	case KeyExitNodeAllowLAN:
		return s.ExitNodeAllowLAN, nil
	case KeyWebClient:
		return s.WebClient, nil
	case KeyHostname:
		return s.Hostname, nil
	case KeyAdvertiseRoutes:
		return s.AdvertiseRoutes, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Daemon is the subset of the daemon client the reconciler needs.
type Daemon interface {
	Prefs(ctx context.Context) (*tailscale.Prefs, error)
	SetBool(ctx context.Context, flag tailscale.Flag, value bool) error
	SetString(ctx context.Context, flag tailscale.Flag, value string) error
}

// Reconciler reads and writes the flat preference set.
type Reconciler struct {
	daemon Daemon
}

// NewReconciler creates a reconciler backed by the given daemon client.
func NewReconciler(d Daemon) *Reconciler {
	return &Reconciler{daemon: d}
}

// Load reads the current preferences.
func (r *Reconciler) Load(ctx context.Context) (Set, error) {
	raw, err := r.daemon.Prefs(ctx)
	if err != nil {
		return Set{}, err
	}
	return FromRaw(*raw), nil
}

// SetAdvertiseExitNode adds or removes the universal-default routes, keeping
// every other advertised route. The route list is read fresh from the daemon
// and written back whole in one call.
//
// Two overlapping writers can still lose an update between the read and the
// write; the daemon offers no compare-and-set.
func (r *Reconciler) SetAdvertiseExitNode(ctx context.Context, enable bool) error {
	raw, err := r.daemon.Prefs(ctx)
	if err != nil {
		return err
	}
	return r.writeRoutes(ctx, WithExitNode(raw.AdvertiseRoutes, enable))
}

// SetAdvertiseRoutes replaces the user-facing route list. If exit-node
// advertisement is currently enabled the universal defaults are kept.
func (r *Reconciler) SetAdvertiseRoutes(ctx context.Context, input string) error {
	raw, err := r.daemon.Prefs(ctx)
	if err != nil {
		return err
	}
	return r.writeRoutes(ctx, UserRoutes(input, HasExitNode(raw.AdvertiseRoutes)))
}

// SetHostname overrides the node's host name. Empty restores the OS host name.
func (r *Reconciler) SetHostname(ctx context.Context, name string) error {
	return r.daemon.SetString(ctx, tailscale.FlagHostname, strings.TrimSpace(name))
}

// SetBool writes a boolean key.
func (r *Reconciler) SetBool(ctx context.Context, key Key, value bool) error {
	if key == KeyAdvertiseExitNode {
		return r.SetAdvertiseExitNode(ctx, value)
	}
	flag, ok := boolFlags[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return r.daemon.SetBool(ctx, flag, value)
}

// Apply writes one key with a dynamically typed value, as received from the
// settings protocol or a queued command.
func (r *Reconciler) Apply(ctx context.Context, key Key, value any) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if key.IsBool() {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%s expects a boolean, got %T", key, value)
		}
		return r.SetBool(ctx, key, b)
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%s expects a string, got %T", key, value)
	}
	switch key {
	case KeyHostname:
		return r.SetHostname(ctx, s)
	case KeyAdvertiseRoutes:
		return r.SetAdvertiseRoutes(ctx, s)
	}
	return fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

func (r *Reconciler) writeRoutes(ctx context.Context, routes []string) error {
	return r.daemon.SetString(ctx, tailscale.FlagAdvertiseRoutes, JoinRoutes(routes))
}
