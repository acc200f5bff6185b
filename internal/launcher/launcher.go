// Package launcher hands peer actions off to the desktop: clipboard, terminal,
// browser and notifications.
package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/gen2brain/beeep"
)

// AppName is shown as the notification source.
const AppName = "tailtray"

// ErrNoTerminal is returned when none of the configured terminals is installed.
var ErrNoTerminal = errors.New("no terminal emulator found")

// Launcher runs desktop actions. The zero value is not usable; call New.
type Launcher struct {
	mu        sync.RWMutex
	terminals [][]string

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
	copy     func(string) error
	notify   func(title, message string) error
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithTerminals sets the terminal fallback order. Each entry is the terminal
// binary followed by the flags that precede the command to run.
func WithTerminals(terminals [][]string) Option {
	return func(l *Launcher) {
		if len(terminals) > 0 {
			l.terminals = terminals
		}
	}
}

// New creates a launcher backed by the real desktop.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		terminals: [][]string{{"xterm", "-e"}},
		lookPath:  exec.LookPath,
		start:     startDetached,
		copy:      clipboard.WriteAll,
		notify: func(title, message string) error {
			beeep.AppName = AppName
			return beeep.Notify(title, message, "")
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetTerminals replaces the terminal fallback order. Safe to call while SSH runs.
func (l *Launcher) SetTerminals(terminals [][]string) {
	if len(terminals) == 0 {
		return
	}
	l.mu.Lock()
	l.terminals = terminals
	l.mu.Unlock()
}

func (l *Launcher) terminalList() [][]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([][]string(nil), l.terminals...)
}

// CopyIP writes ip to the system clipboard.
func (l *Launcher) CopyIP(ip string) error {
	if ip == "" {
		return errors.New("peer has no address")
	}
	if err := l.copy(ip); err != nil {
		return fmt.Errorf("failed to copy %s: %w", ip, err)
	}
	return nil
}

// OpenURL opens url in the default browser.
func (l *Launcher) OpenURL(url string) error {
	if err := l.start("xdg-open", url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// SSH opens an ssh session to target in the first installed terminal.
func (l *Launcher) SSH(target string) error {
	if target == "" {
		return errors.New("peer has no address")
	}
	for _, term := range l.terminalList() {
		if len(term) == 0 {
			continue
		}
		path, err := l.lookPath(term[0])
		if err != nil {
			continue
		}
		args := append(append([]string(nil), term[1:]...), "ssh", target)
		if err := l.start(path, args...); err != nil {
			return fmt.Errorf("failed to start %s: %w", term[0], err)
		}
		return nil
	}
	return ErrNoTerminal
}

// Notify shows a desktop notification.
func (l *Launcher) Notify(title, message string) error {
	return l.notify(title, message)
}

// SSHTarget returns the ssh destination for ip, prefixed with user when set.
func SSHTarget(user, ip string) string {
	user = strings.TrimSpace(user)
	if user == "" || ip == "" {
		return ip
	}
	return user + "@" + ip
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}
