package prefs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tailtray/tailtray/internal/tailscale"
)

// --- fakes ---

// fakeDaemon keeps preferences in memory and applies `set` the way the CLI does.
type fakeDaemon struct {
	prefs    tailscale.Prefs
	prefsErr error
	setErr   error
	bools    map[tailscale.Flag]bool
	writes   []string
}

func newFakeDaemon(routes ...string) *fakeDaemon {
	return &fakeDaemon{
		prefs: tailscale.Prefs{AdvertiseRoutes: routes},
		bools: make(map[tailscale.Flag]bool),
	}
}

func (f *fakeDaemon) Prefs(context.Context) (*tailscale.Prefs, error) {
	if f.prefsErr != nil {
		return nil, f.prefsErr
	}
	p := f.prefs
	p.AdvertiseRoutes = append([]string(nil), f.prefs.AdvertiseRoutes...)
	return &p, nil
}

func (f *fakeDaemon) SetBool(_ context.Context, flag tailscale.Flag, value bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.bools[flag] = value
	return nil
}

func (f *fakeDaemon) SetString(_ context.Context, flag tailscale.Flag, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.writes = append(f.writes, string(flag)+"="+value)
	switch flag {
	case tailscale.FlagAdvertiseRoutes:
		f.prefs.AdvertiseRoutes = nil
		if value != "" {
			f.prefs.AdvertiseRoutes = strings.Split(value, ",")
		}
	case tailscale.FlagHostname:
		f.prefs.Hostname = value
	}
	return nil
}

func contains(routes []string, want string) bool {
	for _, r := range routes {
		if r == want {
			return true
		}
	}
	return false
}

func count(routes []string, want string) int {
	n := 0
	for _, r := range routes {
		if r == want {
			n++
		}
	}
	return n
}

// --- tests ---

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name         string
		routes       []string
		wantExitNode bool
		wantRoutes   string
	}{
		{name: "empty", routes: nil, wantExitNode: false, wantRoutes: ""},
		{name: "routes only", routes: []string{"10.0.0.0/24", "192.168.1.0/24"}, wantExitNode: false, wantRoutes: "10.0.0.0/24,192.168.1.0/24"},
		{name: "both defaults", routes: []string{"10.0.0.0/24", "0.0.0.0/0", "::/0"}, wantExitNode: true, wantRoutes: "10.0.0.0/24"},
		{name: "ipv6 default only", routes: []string{"::/0", "10.1.0.0/16"}, wantExitNode: true, wantRoutes: "10.1.0.0/16"},
		{name: "defaults in the middle keep order", routes: []string{"10.2.0.0/16", "0.0.0.0/0", "10.1.0.0/16", "::/0"}, wantExitNode: true, wantRoutes: "10.2.0.0/16,10.1.0.0/16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := FromRaw(tailscale.Prefs{AdvertiseRoutes: tt.routes})
			if set.AdvertiseExitNode != tt.wantExitNode {
				t.Errorf("AdvertiseExitNode = %v, want %v", set.AdvertiseExitNode, tt.wantExitNode)
			}
			if set.AdvertiseRoutes != tt.wantRoutes {
				t.Errorf("AdvertiseRoutes = %q, want %q", set.AdvertiseRoutes, tt.wantRoutes)
			}
		})
	}
}

func TestFromRaw_PassThrough(t *testing.T) {
	set := FromRaw(tailscale.Prefs{
		CorpDNS:                true,
		RouteAll:               true,
		ShieldsUp:              true,
		RunSSH:                 true,
		RunWebClient:           true,
		ExitNodeAllowLANAccess: true,
		Hostname:               "box",
		LoginName:              "me@example.com",
	})
	if !set.AcceptDNS || !set.AcceptRoutes || !set.ShieldsUp || !set.RunSSH || !set.WebClient || !set.ExitNodeAllowLAN {
		t.Errorf("boolean pass-through lost a value: %+v", set)
	}
	if set.Hostname != "box" || set.LoginName != "me@example.com" {
		t.Errorf("string pass-through lost a value: %+v", set)
	}
}

func TestReconciler_EnableExitNodeRoundTrip(t *testing.T) {
	d := newFakeDaemon("10.0.0.0/24")
	r := NewReconciler(d)
	ctx := context.Background()

	if err := r.SetAdvertiseExitNode(ctx, true); err != nil {
		t.Fatalf("SetAdvertiseExitNode: %v", err)
	}

	routes := d.prefs.AdvertiseRoutes
	if len(routes) != 3 {
		t.Fatalf("routes = %v, want 3 entries", routes)
	}
	for _, want := range []string{"10.0.0.0/24", DefaultRouteV4, DefaultRouteV6} {
		if !contains(routes, want) {
			t.Errorf("routes %v missing %s", routes, want)
		}
	}

	set, err := r.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !set.AdvertiseExitNode {
		t.Error("AdvertiseExitNode = false after enabling")
	}
	if set.AdvertiseRoutes != "10.0.0.0/24" {
		t.Errorf("AdvertiseRoutes = %q, want 10.0.0.0/24", set.AdvertiseRoutes)
	}
}

func TestReconciler_EnableExitNodeTwiceHasNoDuplicates(t *testing.T) {
	d := newFakeDaemon("10.0.0.0/24")
	r := NewReconciler(d)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := r.SetAdvertiseExitNode(ctx, true); err != nil {
			t.Fatalf("SetAdvertiseExitNode #%d: %v", i+1, err)
		}
	}

	if n := count(d.prefs.AdvertiseRoutes, DefaultRouteV4); n != 1 {
		t.Errorf("%s appears %d times in %v", DefaultRouteV4, n, d.prefs.AdvertiseRoutes)
	}
	if n := count(d.prefs.AdvertiseRoutes, DefaultRouteV6); n != 1 {
		t.Errorf("%s appears %d times in %v", DefaultRouteV6, n, d.prefs.AdvertiseRoutes)
	}
}

func TestReconciler_DisableExitNodeKeepsRoutes(t *testing.T) {
	d := newFakeDaemon("0.0.0.0/0", "10.0.0.0/24", "::/0", "10.9.0.0/16")
	r := NewReconciler(d)

	if err := r.SetAdvertiseExitNode(context.Background(), false); err != nil {
		t.Fatalf("SetAdvertiseExitNode: %v", err)
	}

	got := JoinRoutes(d.prefs.AdvertiseRoutes)
	if got != "10.0.0.0/24,10.9.0.0/16" {
		t.Errorf("routes = %q, want 10.0.0.0/24,10.9.0.0/16", got)
	}
}

func TestReconciler_SetRoutesKeepsExitNode(t *testing.T) {
	d := newFakeDaemon("10.0.0.0/24", "0.0.0.0/0", "::/0")
	r := NewReconciler(d)
	ctx := context.Background()

	if err := r.SetAdvertiseRoutes(ctx, "192.168.1.0/24"); err != nil {
		t.Fatalf("SetAdvertiseRoutes: %v", err)
	}

	routes := d.prefs.AdvertiseRoutes
	for _, want := range []string{"192.168.1.0/24", DefaultRouteV4, DefaultRouteV6} {
		if !contains(routes, want) {
			t.Errorf("routes %v missing %s", routes, want)
		}
	}
	if contains(routes, "10.0.0.0/24") {
		t.Errorf("routes %v still contain the replaced entry", routes)
	}

	set, err := r.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !set.AdvertiseExitNode || set.AdvertiseRoutes != "192.168.1.0/24" {
		t.Errorf("re-read = (%v, %q), want (true, 192.168.1.0/24)", set.AdvertiseExitNode, set.AdvertiseRoutes)
	}
}

func TestReconciler_SetRoutesDoesNotEnableExitNode(t *testing.T) {
	d := newFakeDaemon("10.0.0.0/24")
	r := NewReconciler(d)

	if err := r.SetAdvertiseRoutes(context.Background(), "192.168.1.0/24, 0.0.0.0/0 10.5.0.0/16"); err != nil {
		t.Fatalf("SetAdvertiseRoutes: %v", err)
	}

	got := JoinRoutes(d.prefs.AdvertiseRoutes)
	if got != "192.168.1.0/24,10.5.0.0/16" {
		t.Errorf("routes = %q", got)
	}
}

func TestReconciler_ClearRoutes(t *testing.T) {
	d := newFakeDaemon("10.0.0.0/24")
	r := NewReconciler(d)

	if err := r.SetAdvertiseRoutes(context.Background(), "  "); err != nil {
		t.Fatalf("SetAdvertiseRoutes: %v", err)
	}
	if d.writes[0] != "advertise-routes=" {
		t.Errorf("write = %q, want advertise-routes=", d.writes[0])
	}
	if len(d.prefs.AdvertiseRoutes) != 0 {
		t.Errorf("routes = %v, want none", d.prefs.AdvertiseRoutes)
	}
}

func TestReconciler_ReadErrorAbortsWrite(t *testing.T) {
	d := newFakeDaemon("10.0.0.0/24")
	d.prefsErr = &tailscale.DaemonError{Op: "debug prefs", Diagnostic: "not running"}
	r := NewReconciler(d)

	err := r.SetAdvertiseExitNode(context.Background(), true)
	if err == nil {
		t.Fatal("expected error")
	}
	var de *tailscale.DaemonError
	if !errors.As(err, &de) {
		t.Errorf("error %T is not a *DaemonError", err)
	}
	if len(d.writes) != 0 {
		t.Errorf("writes = %v, want none", d.writes)
	}
}

func TestReconciler_Apply(t *testing.T) {
	tests := []struct {
		name    string
		key     Key
		value   any
		wantErr bool
		check   func(t *testing.T, d *fakeDaemon)
	}{
		{
			name:  "bool pass-through",
			key:   KeyShieldsUp,
			value: true,
			check: func(t *testing.T, d *fakeDaemon) {
				if !d.bools[tailscale.FlagShieldsUp] {
					t.Error("shields-up not set")
				}
			},
		},
		{
			name:  "bool false",
			key:   KeyWebClient,
			value: false,
			check: func(t *testing.T, d *fakeDaemon) {
				if v, ok := d.bools[tailscale.FlagWebClient]; !ok || v {
					t.Errorf("webclient = %v, %v", v, ok)
				}
			},
		},
		{
			name:  "exit node goes through routes",
			key:   KeyAdvertiseExitNode,
			value: true,
			check: func(t *testing.T, d *fakeDaemon) {
				if _, ok := d.bools["advertise-exit-node"]; ok {
					t.Error("exit node must not be written as a boolean flag")
				}
				if !HasExitNode(d.prefs.AdvertiseRoutes) {
					t.Errorf("routes = %v", d.prefs.AdvertiseRoutes)
				}
			},
		},
		{
			name:  "hostname trimmed",
			key:   KeyHostname,
			value: "  box  ",
			check: func(t *testing.T, d *fakeDaemon) {
				if d.prefs.Hostname != "box" {
					t.Errorf("hostname = %q", d.prefs.Hostname)
				}
			},
		},
		{name: "bool key with string", key: KeyAcceptDNS, value: "true", wantErr: true},
		{name: "string key with bool", key: KeyHostname, value: true, wantErr: true},
		{name: "unknown key", key: Key("autoupdate"), value: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDaemon("10.0.0.0/24")
			r := NewReconciler(d)

			err := r.Apply(context.Background(), tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, d)
			}
		})
	}
}

func TestReconciler_UnknownKeyIsSentinel(t *testing.T) {
	r := NewReconciler(newFakeDaemon())
	err := r.SetBool(context.Background(), KeyHostname, true)
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("error = %v, want ErrUnknownKey", err)
	}
}

func TestSet_Value(t *testing.T) {
	set := Set{AcceptDNS: true, Hostname: "box", AdvertiseRoutes: "10.0.0.0/24"}
	for _, key := range Keys {
		v, err := set.Value(key)
		if err != nil {
			t.Errorf("Value(%s): %v", key, err)
			continue
		}
		if _, isBool := v.(bool); isBool != key.IsBool() {
			t.Errorf("Value(%s) type %T disagrees with IsBool()=%v", key, v, key.IsBool())
		}
	}
	if _, err := set.Value(Key("nope")); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Value(nope) error = %v", err)
	}
}
