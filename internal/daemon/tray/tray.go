package tray

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/tailtray/tailtray/internal/applet"
	"github.com/tailtray/tailtray/internal/coordinator"
	"github.com/tailtray/tailtray/internal/launcher"
	"github.com/tailtray/tailtray/internal/models"
	"github.com/tailtray/tailtray/internal/prefs"
	"github.com/tailtray/tailtray/internal/tailscale"
)

const maxPeerSlots = 20

type actionKind int

const (
	actionToggle actionKind = iota
	actionCopySelf
	actionCopyPeer
	actionSSHPeer
	actionPref
	actionAdmin
	actionQuit
)

type action struct {
	kind actionKind
	slot int
	key  prefs.Key
}

var (
	opts    Options
	st      *applet.State
	clicks  = make(chan action, 8)
	cfgMu   sync.RWMutex
	pending = make(map[prefs.Key]bool)

	prefsCh      = make(chan prefsResult, 1)
	prefsLoading bool

	statusItem   *systray.MenuItem
	selfItem     *systray.MenuItem
	toggleItem   *systray.MenuItem
	noPeersItem  *systray.MenuItem
	overflowItem *systray.MenuItem
	adminItem    *systray.MenuItem
	quitItem     *systray.MenuItem

	// Pre-allocated peer menu slots
	peerSlots [maxPeerSlots]*systray.MenuItem
	peerCopy  [maxPeerSlots]*systray.MenuItem
	peerSSH   [maxPeerSlots]*systray.MenuItem

	prefItems = make(map[prefs.Key]*systray.MenuItem)
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
func Run(o Options) {
	opts = o
	st = o.State
	if st == nil {
		st = applet.New()
	}
	if opts.Settings == nil {
		opts.Settings = models.NewSettings()
	}
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

// SetSSHUsers replaces the per-host SSH usernames. Safe to call from any goroutine.
func SetSSHUsers(users *models.SSHUsers) {
	cfgMu.Lock()
	opts.SSHUsers = users
	cfgMu.Unlock()
}

// SetSettings replaces the settings used for actions. Safe to call from any goroutine.
func SetSettings(s *models.Settings) {
	cfgMu.Lock()
	opts.Settings = s
	cfgMu.Unlock()
}

func onReady() {
	systray.SetIcon(icon(st.Connected))
	systray.SetTitle("")
	systray.SetTooltip(st.Tooltip())

	header := systray.AddMenuItem("Tailscale", "")
	header.Disable()

	statusItem = systray.AddMenuItem(st.StatusMessage, "")
	statusItem.Disable()

	selfItem = systray.AddMenuItem("", "Copy this device's address")
	forward(selfItem.ClickedCh, action{kind: actionCopySelf})

	toggleItem = systray.AddMenuItem(toggleTitle(st.Connected), "")
	forward(toggleItem.ClickedCh, action{kind: actionToggle})

	systray.AddSeparator()

	// Pre-allocate peer slots (hidden by default)
	for i := 0; i < maxPeerSlots; i++ {
		peerSlots[i] = systray.AddMenuItem("", "")
		peerCopy[i] = peerSlots[i].AddSubMenuItem("Copy IP", "")
		peerSSH[i] = peerSlots[i].AddSubMenuItem("SSH", "")
		peerSlots[i].Hide()
		forward(peerCopy[i].ClickedCh, action{kind: actionCopyPeer, slot: i})
		forward(peerSSH[i].ClickedCh, action{kind: actionSSHPeer, slot: i})
	}
	overflowItem = systray.AddMenuItem("", "")
	overflowItem.Disable()
	overflowItem.Hide()

	noPeersItem = systray.AddMenuItem("No peers", "")
	noPeersItem.Disable()

	systray.AddSeparator()

	prefsMenu := systray.AddMenuItem("Preferences", "")
	for _, key := range prefs.Keys {
		if !key.IsBool() {
			continue
		}
		checked := false
		if v, err := opts.Prefs.Value(key); err == nil {
			checked, _ = v.(bool)
		}
		item := prefsMenu.AddSubMenuItemCheckbox(key.Label(), "", checked)
		prefItems[key] = item
		forward(item.ClickedCh, action{kind: actionPref, key: key})
	}

	adminItem = systray.AddMenuItem("Admin console…", "Open the admin console in a browser")
	forward(adminItem.ClickedCh, action{kind: actionAdmin})
	quitItem = systray.AddMenuItem("Quit", "Quit tailtray")
	forward(quitItem.ClickedCh, action{kind: actionQuit})

	render()

	if opts.OnStart != nil {
		opts.OnStart()
	}

	go loop()
}

func onQuit() {
	if opts.OnExit != nil {
		opts.OnExit()
	}
}

// forward relays menu clicks into the single tray loop.
func forward(ch <-chan struct{}, a action) {
	go func() {
		for range ch {
			clicks <- a
		}
	}()
}

func loop() {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var events []coordinator.Event
			if opts.Controller != nil {
				events = opts.Controller.Events()
			}
			for _, ev := range events {
				observe(ev)
			}
			if needsPrefsReload(events) {
				reloadPrefs()
			}
			st.Tick(events)
			render()

		case r := <-prefsCh:
			prefsLoading = false
			if r.err != nil {
				log.Printf("Preference reload failed: %v", r.err)
				continue
			}
			applyChecks(checkStates(r.set, pending))

		case a := <-clicks:
			if a.kind == actionQuit {
				systray.Quit()
				return
			}
			handle(a)
			render()
		}
	}
}

// observe reacts to events that need more than a display change.
func observe(ev coordinator.Event) {
	switch ev := ev.(type) {
	case coordinator.ToggleComplete:
		notifyToggle(ev)
	case coordinator.PreferenceApplied:
		value, ok := pending[ev.Key]
		delete(pending, ev.Key)
		item := prefItems[ev.Key]
		if !ok || item == nil || ev.Err != nil {
			return
		}
		if value {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// reloadPrefs reads preferences off the tray loop; at most one read runs at a time.
func reloadPrefs() {
	if opts.Loader == nil || prefsLoading {
		return
	}
	prefsLoading = true
	go func() {
		set, err := opts.Loader.Load(context.Background())
		prefsCh <- prefsResult{set: set, err: err}
	}()
}

func applyChecks(states map[prefs.Key]bool) {
	for key, checked := range states {
		item := prefItems[key]
		if item == nil || item.Checked() == checked {
			continue
		}
		if checked {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

func notifyToggle(ev coordinator.ToggleComplete) {
	cfgMu.RLock()
	n := opts.Settings.Notifications
	cfgMu.RUnlock()

	if !n.Enabled || opts.Desktop == nil {
		return
	}
	if ev.Err == nil && n.OnError {
		return
	}
	msg := ev.Message
	if ev.Err != nil {
		msg = "Error: " + tailscale.Diagnostic(ev.Err)
	}
	if err := opts.Desktop.Notify("Tailscale", msg); err != nil {
		log.Printf("Notification failed: %v", err)
	}
}

func handle(a action) {
	switch a.kind {
	case actionToggle:
		submit(coordinator.NewToggle(), func() { st.BeginToggle() })

	case actionPref:
		item := prefItems[a.key]
		if item == nil {
			return
		}
		value := !item.Checked()
		submit(coordinator.NewSetPreference(a.key, value), func() { pending[a.key] = value })

	case actionCopySelf:
		copyIP(st.SelfIP())

	case actionCopyPeer:
		if p, ok := peerAt(a.slot); ok {
			copyIP(p.PrimaryIP())
		}

	case actionSSHPeer:
		p, ok := peerAt(a.slot)
		if !ok || opts.Desktop == nil {
			return
		}
		cfgMu.RLock()
		user := opts.SSHUsers.Lookup(p.HostName)
		cfgMu.RUnlock()
		if err := opts.Desktop.SSH(launcher.SSHTarget(user, p.PrimaryIP())); err != nil {
			log.Printf("SSH to %s failed: %v", p.HostName, err)
		}

	case actionAdmin:
		if opts.Desktop == nil {
			return
		}
		cfgMu.RLock()
		url := opts.Settings.AdminConsoleURL
		cfgMu.RUnlock()
		if err := opts.Desktop.OpenURL(url); err != nil {
			log.Printf("Open admin console failed: %v", err)
		}
	}
}

func submit(cmd coordinator.Command, onAccepted func()) {
	if opts.Controller == nil {
		return
	}
	if err := opts.Controller.Submit(cmd); err != nil {
		if errors.Is(err, coordinator.ErrCommandPending) {
			log.Printf("Ignoring %T: another command is in flight", cmd)
			return
		}
		log.Printf("Submit failed: %v", err)
		return
	}
	onAccepted()
}

func copyIP(ip string) {
	if opts.Desktop == nil || ip == "" {
		return
	}
	if err := opts.Desktop.CopyIP(ip); err != nil {
		log.Printf("Copy failed: %v", err)
		return
	}
	st.MarkCopied(ip)
}

func peerAt(slot int) (tailscale.Peer, bool) {
	if slot < 0 || slot >= len(st.Peers) {
		return tailscale.Peer{}, false
	}
	return st.Peers[slot], true
}

// render pushes the display state into the menu.
func render() {
	systray.SetIcon(icon(st.Connected))
	systray.SetTooltip(st.Tooltip())
	statusItem.SetTitle(st.StatusMessage)

	toggleItem.SetTitle(toggleTitle(st.Connected))
	if st.Toggling {
		toggleItem.Disable()
	} else {
		toggleItem.Enable()
	}

	if st.Connected && st.SelfIP() != "" {
		selfItem.SetTitle(formatSelfTitle(st.Self, st.CopiedIP))
		selfItem.Show()
	} else {
		selfItem.Hide()
	}

	peers := st.Peers
	if !st.Connected {
		peers = nil
	}

	cfgMu.RLock()
	users := opts.SSHUsers
	cfgMu.RUnlock()

	for i := 0; i < maxPeerSlots; i++ {
		if i >= len(peers) {
			peerSlots[i].Hide()
			continue
		}
		p := peers[i]
		ip := p.PrimaryIP()
		peerSlots[i].SetTitle(formatPeerTitle(p, st.CopiedIP))
		peerCopy[i].SetTitle(formatCopyTitle(ip))
		peerSSH[i].SetTitle(formatSSHTitle(launcher.SSHTarget(users.Lookup(p.HostName), ip)))
		if ip == "" {
			peerCopy[i].Disable()
			peerSSH[i].Disable()
		} else {
			peerCopy[i].Enable()
			peerSSH[i].Enable()
		}
		peerSlots[i].Show()
	}

	if hidden := len(peers) - maxPeerSlots; hidden > 0 {
		overflowItem.SetTitle(formatOverflow(hidden))
		overflowItem.Show()
	} else {
		overflowItem.Hide()
	}

	if len(peers) == 0 {
		noPeersItem.Show()
	} else {
		noPeersItem.Hide()
	}
}
