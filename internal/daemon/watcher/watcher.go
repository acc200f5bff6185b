// Package watcher reloads tailtray's configuration files while the tray runs.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tailtray/tailtray/internal/config"
)

// EventType represents the type of configuration change.
type EventType int

// Event types for configuration changes.
const (
	EventSettingsChanged EventType = iota
	EventSSHUsersChanged
)

func (t EventType) String() string {
	switch t {
	case EventSettingsChanged:
		return "settings"
	case EventSSHUsersChanged:
		return "ssh_users"
	default:
		return "unknown"
	}
}

// DebounceDelay is how long a path must stay quiet before its change is reported.
const DebounceDelay = 100 * time.Millisecond

// Event represents a configuration file change.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the config directory for changes to known files.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	dir        string
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a watcher for dir. An empty dir means config.Dir().
func New(dir string) (*Watcher, error) {
	if dir == "" {
		d, err := config.Dir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		dir:        dir,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Done is closed by Stop. Consumers of Events select on it to exit; Events
// itself is never closed because pending debounce timers may still send.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Start creates the directory if needed and starts watching it.
func (w *Watcher) Start() error {
	if err := config.EnsureDirAt(w.dir); err != nil {
		return err
	}
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename matters: SaveYAML writes a temp file and renames it over the target.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	typ, ok := classify(event.Name)
	if !ok {
		return
	}
	w.debounceEvent(event.Name, func() {
		select {
		case w.eventsChan <- Event{Type: typ, Path: event.Name}:
		case <-w.done:
		}
	})
}

func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(DebounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

// classify maps a changed path to an event type.
func classify(path string) (EventType, bool) {
	switch filepath.Base(path) {
	case config.SettingsFileName:
		return EventSettingsChanged, true
	case config.SSHUsersFileName:
		return EventSSHUsersChanged, true
	}
	return 0, false
}
