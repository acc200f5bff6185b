package tray

import (
	"github.com/tailtray/tailtray/internal/coordinator"
	"github.com/tailtray/tailtray/internal/prefs"
)

type prefsResult struct {
	set prefs.Set
	err error
}

// needsPrefsReload reports whether a drained batch may have changed daemon
// preferences: a preference write finished, or a poll reached the daemon
// (another client may have written in between).
func needsPrefsReload(events []coordinator.Event) bool {
	for _, ev := range events {
		switch ev := ev.(type) {
		case coordinator.PreferenceApplied:
			return true
		case coordinator.StatusUpdate:
			if ev.Err == nil {
				return true
			}
		}
	}
	return false
}

// checkStates returns the checkbox state of every boolean key in set, leaving
// out keys with a write still pending.
func checkStates(set prefs.Set, pending map[prefs.Key]bool) map[prefs.Key]bool {
	out := make(map[prefs.Key]bool)
	for _, key := range prefs.Keys {
		if !key.IsBool() {
			continue
		}
		if _, busy := pending[key]; busy {
			continue
		}
		v, err := set.Value(key)
		if err != nil {
			continue
		}
		b, _ := v.(bool)
		out[key] = b
	}
	return out
}
