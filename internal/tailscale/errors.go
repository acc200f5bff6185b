package tailscale

import (
	"errors"
	"fmt"
)

// DaemonError reports a failed tailscale invocation: the process could not be
// launched, it exited non-zero, or its output could not be parsed.
// Diagnostic carries the daemon's own text (stderr) or the parse failure.
type DaemonError struct {
	Op         string
	Diagnostic string
	Err        error
}

func (e *DaemonError) Error() string {
	if e.Diagnostic == "" {
		return fmt.Sprintf("tailscale %s failed", e.Op)
	}
	return fmt.Sprintf("tailscale %s failed: %s", e.Op, e.Diagnostic)
}

func (e *DaemonError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the daemon's diagnostic text for err, or err.Error()
// when err is not a DaemonError.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	var de *DaemonError
	if errors.As(err, &de) && de.Diagnostic != "" {
		return de.Diagnostic
	}
	return err.Error()
}
