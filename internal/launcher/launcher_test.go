package launcher

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

type started struct {
	name string
	args []string
}

func newTestLauncher(installed ...string) (*Launcher, *[]started) {
	var calls []started
	have := make(map[string]bool)
	for _, name := range installed {
		have[name] = true
	}
	l := New()
	l.lookPath = func(name string) (string, error) {
		if have[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	l.start = func(name string, args ...string) error {
		calls = append(calls, started{name: name, args: args})
		return nil
	}
	return l, &calls
}

func TestSSHTarget(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		ip       string
		expected string
	}{
		{name: "no user", ip: "100.64.0.2", expected: "100.64.0.2"},
		{name: "user", user: "deploy", ip: "100.64.0.2", expected: "deploy@100.64.0.2"},
		{name: "blank user", user: "  ", ip: "100.64.0.2", expected: "100.64.0.2"},
		{name: "no ip", user: "deploy", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SSHTarget(tt.user, tt.ip); got != tt.expected {
				t.Errorf("SSHTarget(%q, %q) = %q, want %q", tt.user, tt.ip, got, tt.expected)
			}
		})
	}
}

func TestSSH_FallsBackThroughTerminals(t *testing.T) {
	l, calls := newTestLauncher("konsole", "xterm")
	l.SetTerminals([][]string{
		{"cosmic-term", "-e"},
		{"gnome-terminal", "--"},
		{"konsole", "-e"},
		{"xterm", "-e"},
	})

	if err := l.SSH("deploy@100.64.0.2"); err != nil {
		t.Fatalf("SSH() error = %v", err)
	}
	want := []started{{name: "/usr/bin/konsole", args: []string{"-e", "ssh", "deploy@100.64.0.2"}}}
	if !reflect.DeepEqual(*calls, want) {
		t.Errorf("started = %+v, want %+v", *calls, want)
	}
}

func TestSSH_NoTerminal(t *testing.T) {
	l, calls := newTestLauncher()
	if err := l.SSH("100.64.0.2"); !errors.Is(err, ErrNoTerminal) {
		t.Errorf("SSH() error = %v, want ErrNoTerminal", err)
	}
	if len(*calls) != 0 {
		t.Errorf("started = %+v", *calls)
	}
}

func TestOpenURL(t *testing.T) {
	l, calls := newTestLauncher()
	if err := l.OpenURL("https://login.tailscale.com/admin/machines"); err != nil {
		t.Fatalf("OpenURL() error = %v", err)
	}
	want := []started{{name: "xdg-open", args: []string{"https://login.tailscale.com/admin/machines"}}}
	if !reflect.DeepEqual(*calls, want) {
		t.Errorf("started = %+v", *calls)
	}
}

func TestCopyIP(t *testing.T) {
	l, _ := newTestLauncher()
	var copied string
	l.copy = func(s string) error {
		copied = s
		return nil
	}

	if err := l.CopyIP("100.64.0.2"); err != nil {
		t.Fatalf("CopyIP() error = %v", err)
	}
	if copied != "100.64.0.2" {
		t.Errorf("copied = %q", copied)
	}
	if err := l.CopyIP(""); err == nil {
		t.Error("expected error for empty address")
	}

	l.copy = func(string) error { return errors.New("no display") }
	if err := l.CopyIP("100.64.0.2"); err == nil {
		t.Error("expected clipboard error")
	}
}

func TestSetTerminals_ConcurrentWithSSH(t *testing.T) {
	l := New()
	l.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	l.start = func(string, ...string) error { return nil }

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			l.SetTerminals([][]string{{"xterm", "-e"}, {"konsole", "-e"}})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if err := l.SSH("100.64.0.2"); err != nil {
				t.Errorf("SSH() error = %v", err)
				return
			}
		}
	}()
	wg.Wait()
}
