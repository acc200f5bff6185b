package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tailtray/tailtray/internal/applet"
	"github.com/tailtray/tailtray/internal/config"
	"github.com/tailtray/tailtray/internal/coordinator"
	"github.com/tailtray/tailtray/internal/daemon/tray"
	"github.com/tailtray/tailtray/internal/daemon/watcher"
	"github.com/tailtray/tailtray/internal/launcher"
	"github.com/tailtray/tailtray/internal/models"
	"github.com/tailtray/tailtray/internal/prefs"
	"github.com/tailtray/tailtray/internal/tailscale"
)

// app holds everything the tray and foreground modes share.
type app struct {
	settings   *models.Settings
	sshUsers   *models.SSHUsers
	client     *tailscale.Client
	reconciler *prefs.Reconciler
	coord      *coordinator.Coordinator
	desktop    *launcher.Launcher
}

func run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := config.EnsureDir(); err != nil {
		log.Printf("Failed to create config directory: %v", err)
		return err
	}

	running, info, err := config.IsInstanceRunning()
	if err != nil {
		log.Printf("Failed to check instance status: %v", err)
		return err
	}
	if running {
		err := fmt.Errorf("tailtrayd already running (PID %d)", info.PID)
		log.Print(err)
		return err
	}

	a, err := newApp()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return err
	}

	if err := config.SaveInstanceInfo(models.NewInstanceInfo(os.Getpid(), a.settings.TailscalePath)); err != nil {
		log.Printf("Failed to write instance info: %v", err)
		return err
	}

	if foreground {
		log.Println("Running in foreground mode (no system tray)")
		return a.runForeground(ctx)
	}
	log.Println("Running with system tray")
	a.runWithTray(ctx)
	return nil
}

func newApp() (*app, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	if tailscalePath != "" {
		settings.TailscalePath = tailscalePath
	}
	if pollInterval > 0 {
		settings.PollInterval = pollInterval.String()
	}

	users, err := config.LoadSSHUsers()
	if err != nil {
		log.Printf("Failed to load SSH users, starting empty: %v", err)
		users = models.NewSSHUsers()
	}

	client := tailscale.NewClient(tailscale.WithBinary(settings.TailscalePath))
	reconciler := prefs.NewReconciler(client)
	coord := coordinator.New(client,
		coordinator.WithInterval(settings.PollEvery()),
		coordinator.WithPreferences(reconciler),
	)

	return &app{
		settings:   settings,
		sshUsers:   users,
		client:     client,
		reconciler: reconciler,
		coord:      coord,
		desktop:    launcher.New(launcher.WithTerminals(settings.Terminals)),
	}, nil
}

// runForeground runs the coordinator without a tray, logging every event
// until SIGINT or SIGTERM.
func (a *app) runForeground(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	w := a.startWatcher()
	defer func() {
		if w != nil {
			w.Stop()
		}
		if err := config.RemoveInstanceInfo(); err != nil {
			log.Printf("Failed to remove instance info: %v", err)
		}
		fmt.Println("tailtrayd stopped")
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.coord.Run(ctx)
	}()

	log.Printf("tailtrayd started (PID %d, polling every %s)", os.Getpid(), a.coord.Interval())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal %v, shutting down...", sig)
			cancel()
			return <-errCh
		case err := <-errCh:
			return err
		case <-a.coord.Ready():
			for _, ev := range a.coord.Events() {
				logEvent(ev)
			}
		}
	}
}

// runWithTray runs the tray on the calling goroutine, which must be main.
func (a *app) runWithTray(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)

	st, err := a.client.Status(ctx)
	initial := applet.NewFromStatus(st, err)
	if err != nil {
		log.Printf("Initial status unavailable: %v", err)
	}

	set, err := a.reconciler.Load(ctx)
	if err != nil {
		log.Printf("Initial preferences unavailable: %v", err)
	}

	var w *watcher.Watcher

	onStart := func() {
		go func() {
			if err := a.coord.Run(ctx); err != nil {
				log.Printf("Coordinator error: %v", err)
				tray.Quit()
			}
		}()

		w = a.startWatcher()

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				log.Printf("Received signal %v, shutting down...", sig)
				tray.Quit()
			case <-ctx.Done():
			}
		}()

		log.Printf("tailtrayd started (PID %d, polling every %s)", os.Getpid(), a.coord.Interval())
	}

	onExit := func() {
		cancel()
		if w != nil {
			w.Stop()
		}
		if err := config.RemoveInstanceInfo(); err != nil {
			log.Printf("Failed to remove instance info: %v", err)
		}
		fmt.Println("tailtrayd stopped")
	}

	tray.Run(tray.Options{
		Controller: a.coord,
		Desktop:    a.desktop,
		State:      initial,
		Prefs:      set,
		Loader:     a.reconciler,
		Settings:   a.settings,
		SSHUsers:   a.sshUsers,
		OnStart:    onStart,
		OnExit:     onExit,
	})
}

// startWatcher watches the config directory and reloads settings and SSH
// users on change. Returns nil if the watcher could not start.
func (a *app) startWatcher() *watcher.Watcher {
	w, err := watcher.New("")
	if err != nil {
		log.Printf("Config watcher unavailable: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.Printf("Config watcher unavailable: %v", err)
		return nil
	}

	go func() {
		for {
			select {
			case ev := <-w.Events():
				a.reload(ev)
			case <-w.Done():
				return
			}
		}
	}()
	return w
}

func (a *app) reload(ev watcher.Event) {
	switch ev.Type {
	case watcher.EventSSHUsersChanged:
		users, err := config.LoadSSHUsers()
		if err != nil {
			log.Printf("Failed to reload SSH users: %v", err)
			return
		}
		tray.SetSSHUsers(users)
		log.Printf("Reloaded SSH users (%d hosts)", len(users.Users))

	case watcher.EventSettingsChanged:
		settings, err := config.LoadSettings()
		if err != nil {
			log.Printf("Failed to reload settings: %v", err)
			return
		}
		if tailscalePath != "" {
			settings.TailscalePath = tailscalePath
		}
		if pollInterval > 0 {
			settings.PollInterval = pollInterval.String()
		}
		a.desktop.SetTerminals(settings.Terminals)
		tray.SetSettings(settings)
		if fields := restartFields(a.client.Binary(), a.coord.Interval(), settings); len(fields) > 0 {
			log.Printf("Reloaded settings; %s take effect after restart", strings.Join(fields, ", "))
			return
		}
		log.Println("Reloaded settings")
	}
}

// restartFields names the settings whose new values differ from what the
// running client and coordinator were built with. They are not hot-reloaded.
func restartFields(binary string, interval time.Duration, s *models.Settings) []string {
	var fields []string
	if s.TailscalePath != binary {
		fields = append(fields, "tailscale_path")
	}
	if s.PollEvery() != interval {
		fields = append(fields, "poll_interval")
	}
	return fields
}

func logEvent(ev coordinator.Event) {
	switch e := ev.(type) {
	case coordinator.StatusUpdate:
		if e.Err != nil {
			log.Printf("status: %s", tailscale.Diagnostic(e.Err))
			return
		}
		log.Printf("status: %s, %d/%d peers online", e.Status.BackendState, e.Status.OnlinePeers(), len(e.Status.Peers))
	case coordinator.ToggleStarted:
		log.Printf("toggle %s started", e.CommandID)
	case coordinator.ToggleComplete:
		if e.Err != nil {
			log.Printf("toggle %s failed: %v", e.CommandID, e.Err)
			return
		}
		log.Printf("toggle %s: %s", e.CommandID, e.Message)
	case coordinator.PreferenceApplied:
		if e.Err != nil {
			log.Printf("preference %s failed: %v", e.Key, e.Err)
			return
		}
		log.Printf("preference %s applied", e.Key)
	default:
		log.Printf("event: %s", ev.EventName())
	}
}
