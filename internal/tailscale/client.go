// Package tailscale talks to the local Tailscale daemon through its CLI.
//
// Every call runs the CLI exactly once and either returns a parsed result or
// a *DaemonError. Calls never retry and add no timeout of their own.
package tailscale

import (
	"context"
	"fmt"
	"strings"
)

// DefaultBinary is looked up in PATH when no explicit binary is configured.
const DefaultBinary = "tailscale"

// Client issues single-shot queries and mutations against the daemon.
type Client struct {
	binary string
	runner Runner
}

// Option configures a Client.
type Option func(*Client)

// WithBinary sets the path of the tailscale CLI. Empty keeps the default.
func WithBinary(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.runner = r }
}

// NewClient creates a client for the tailscale CLI.
func NewClient(opts ...Option) *Client {
	c := &Client{
		binary: DefaultBinary,
		runner: ExecRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the CLI path the client invokes.
func (c *Client) Binary() string {
	return c.binary
}

// Status runs `tailscale status --json`.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	out, err := c.run(ctx, "status", "status", "--json")
	if err != nil {
		return nil, err
	}
	st, err := ParseStatus(out)
	if err != nil {
		return nil, &DaemonError{Op: "status", Diagnostic: err.Error(), Err: err}
	}
	return st, nil
}

// Prefs runs `tailscale debug prefs`.
func (c *Client) Prefs(ctx context.Context) (*Prefs, error) {
	out, err := c.run(ctx, "debug prefs", "debug", "prefs")
	if err != nil {
		return nil, err
	}
	p, err := ParsePrefs(out)
	if err != nil {
		return nil, &DaemonError{Op: "debug prefs", Diagnostic: err.Error(), Err: err}
	}
	return p, nil
}

// SetBool runs `tailscale set --<flag>` or `tailscale set --<flag>=false`.
func (c *Client) SetBool(ctx context.Context, flag Flag, value bool) error {
	_, err := c.run(ctx, "set "+string(flag), "set", boolArg(flag, value))
	return err
}

// SetString runs `tailscale set --<flag>=<value>`.
func (c *Client) SetString(ctx context.Context, flag Flag, value string) error {
	_, err := c.run(ctx, "set "+string(flag), "set", stringArg(flag, value))
	return err
}

// Connect runs `tailscale up`.
func (c *Client) Connect(ctx context.Context) (string, error) {
	if _, err := c.run(ctx, "up", "up"); err != nil {
		return "", err
	}
	return "Connected", nil
}

// Disconnect runs `tailscale down`.
func (c *Client) Disconnect(ctx context.Context) (string, error) {
	if _, err := c.run(ctx, "down", "down"); err != nil {
		return "", err
	}
	return "Disconnected", nil
}

// run invokes the CLI and maps launch failures and non-zero exits to DaemonError.
func (c *Client) run(ctx context.Context, op string, args ...string) ([]byte, error) {
	res, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return nil, &DaemonError{
			Op:         op,
			Diagnostic: fmt.Sprintf("failed to run %s: %v", c.binary, err),
			Err:        err,
		}
	}
	if res.ExitCode != 0 {
		diag := strings.TrimSpace(string(res.Stderr))
		if diag == "" {
			diag = fmt.Sprintf("exit status %d", res.ExitCode)
		}
		return nil, &DaemonError{Op: op, Diagnostic: diag}
	}
	return res.Stdout, nil
}
