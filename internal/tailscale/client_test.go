package tailscale

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// --- fakes ---

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	result Result
	err    error
	calls  []call
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.result, f.err
}

func (f *fakeRunner) lastArgs() string {
	if len(f.calls) == 0 {
		return ""
	}
	return strings.Join(f.calls[len(f.calls)-1].args, " ")
}

// --- tests ---

func TestClient_NonZeroExitIsDaemonError(t *testing.T) {
	runner := &fakeRunner{result: Result{ExitCode: 1, Stderr: []byte("not logged in\n")}}
	c := NewClient(WithRunner(runner))

	_, err := c.Status(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var de *DaemonError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not a *DaemonError", err)
	}
	if !strings.Contains(de.Diagnostic, "not logged in") {
		t.Errorf("diagnostic = %q, want it to contain %q", de.Diagnostic, "not logged in")
	}
	if Diagnostic(err) != "not logged in" {
		t.Errorf("Diagnostic(err) = %q", Diagnostic(err))
	}
}

func TestClient_LaunchFailureIsDaemonError(t *testing.T) {
	launchErr := errors.New("exec: \"tailscale\": executable file not found in $PATH")
	runner := &fakeRunner{err: launchErr}
	c := NewClient(WithRunner(runner))

	_, err := c.Connect(context.Background())

	var de *DaemonError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not a *DaemonError", err)
	}
	if !errors.Is(err, launchErr) {
		t.Error("DaemonError should wrap the launch error")
	}
	if de.Op != "up" {
		t.Errorf("op = %q, want up", de.Op)
	}
}

func TestClient_MalformedPayloadIsDaemonError(t *testing.T) {
	runner := &fakeRunner{result: Result{Stdout: []byte("{not json")}}
	c := NewClient(WithRunner(runner))

	if _, err := c.Status(context.Background()); err == nil {
		t.Error("Status: expected error for malformed payload")
	} else if _, ok := err.(*DaemonError); !ok {
		t.Errorf("Status error %T is not a *DaemonError", err)
	}

	if _, err := c.Prefs(context.Background()); err == nil {
		t.Error("Prefs: expected error for malformed payload")
	}
}

func TestClient_EmptyStderrFallsBackToExitStatus(t *testing.T) {
	runner := &fakeRunner{result: Result{ExitCode: 3}}
	c := NewClient(WithRunner(runner))

	err := c.SetBool(context.Background(), FlagShieldsUp, true)
	if Diagnostic(err) != "exit status 3" {
		t.Errorf("Diagnostic = %q, want %q", Diagnostic(err), "exit status 3")
	}
}

func TestClient_Invocations(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) error
		expected string
	}{
		{
			name:     "status",
			call:     func(c *Client) error { _, err := c.Status(context.Background()); return err },
			expected: "status --json",
		},
		{
			name:     "prefs",
			call:     func(c *Client) error { _, err := c.Prefs(context.Background()); return err },
			expected: "debug prefs",
		},
		{
			name:     "bool true",
			call:     func(c *Client) error { return c.SetBool(context.Background(), FlagAcceptDNS, true) },
			expected: "set --accept-dns",
		},
		{
			name:     "bool false",
			call:     func(c *Client) error { return c.SetBool(context.Background(), FlagAcceptRoutes, false) },
			expected: "set --accept-routes=false",
		},
		{
			name:     "string",
			call:     func(c *Client) error { return c.SetString(context.Background(), FlagHostname, "box") },
			expected: "set --hostname=box",
		},
		{
			name:     "empty string clears",
			call:     func(c *Client) error { return c.SetString(context.Background(), FlagAdvertiseRoutes, "") },
			expected: "set --advertise-routes=",
		},
		{
			name:     "up",
			call:     func(c *Client) error { _, err := c.Connect(context.Background()); return err },
			expected: "up",
		},
		{
			name:     "down",
			call:     func(c *Client) error { _, err := c.Disconnect(context.Background()); return err },
			expected: "down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{result: Result{Stdout: []byte(`{"BackendState":"Running","Self":{}}`)}}
			c := NewClient(WithRunner(runner), WithBinary("/usr/bin/tailscale"))

			if err := tt.call(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if runner.calls[0].name != "/usr/bin/tailscale" {
				t.Errorf("binary = %q", runner.calls[0].name)
			}
			if got := runner.lastArgs(); got != tt.expected {
				t.Errorf("args = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClient_PrefsLoginName(t *testing.T) {
	runner := &fakeRunner{result: Result{Stdout: []byte(`{
		"CorpDNS": true,
		"RouteAll": false,
		"AdvertiseRoutes": ["10.0.0.0/24", "0.0.0.0/0", "::/0"],
		"Hostname": "box",
		"Config": {"UserProfile": {"LoginName": "me@example.com"}}
	}`)}}
	c := NewClient(WithRunner(runner))

	p, err := c.Prefs(context.Background())
	if err != nil {
		t.Fatalf("Prefs: %v", err)
	}
	if !p.CorpDNS || p.RouteAll {
		t.Errorf("CorpDNS/RouteAll = %v/%v", p.CorpDNS, p.RouteAll)
	}
	if p.LoginName != "me@example.com" {
		t.Errorf("LoginName = %q", p.LoginName)
	}
	if len(p.AdvertiseRoutes) != 3 {
		t.Errorf("AdvertiseRoutes = %v", p.AdvertiseRoutes)
	}
}

func TestClient_ConnectMessages(t *testing.T) {
	c := NewClient(WithRunner(&fakeRunner{}))

	msg, err := c.Connect(context.Background())
	if err != nil || msg != "Connected" {
		t.Errorf("Connect() = %q, %v", msg, err)
	}
	msg, err = c.Disconnect(context.Background())
	if err != nil || msg != "Disconnected" {
		t.Errorf("Disconnect() = %q, %v", msg, err)
	}
}
